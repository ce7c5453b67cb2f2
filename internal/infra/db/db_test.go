package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/config"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate())

	assert.Equal(t, config.DriverSQLite, database.Driver())
	assert.True(t, database.HealthCheck())
	assert.True(t, database.DB().Migrator().HasTable("reports"))
	assert.True(t, database.DB().Migrator().HasTable("sequences"))
}
