package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is an in-memory sqlite database shared by every scenario of a run.
type Db struct {
	Conn   *gorm.DB
	tables map[string]any
	order  []string
}

// NewDb opens the shared database once and migrates models into it.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	conn, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open database: " + err.Error())
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	d := &Db{Conn: conn, tables: map[string]any{}}
	for _, model := range models {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		d.tables[stmt.Schema.Table] = model
		d.order = append(d.order, stmt.Schema.Table)
	}
	return d
}

// Clear removes every row from every migrated table.
func (d *Db) Clear() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		table := d.order[i]
		if err := d.Conn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// HasTable reports whether table was migrated.
func (d *Db) HasTable(table string) bool {
	_, ok := d.tables[table]
	return ok
}

// Count returns the number of rows in table matching the column filter.
func (d *Db) Count(table string, where map[string]any) (int64, error) {
	if !d.HasTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	query := d.Conn.Table(table)
	for column, value := range where {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
