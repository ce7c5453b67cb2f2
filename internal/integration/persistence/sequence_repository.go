package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// reportSequenceName is the row of the sequences table holding report numbers.
const reportSequenceName = "reports"

// reportSequence implements adapter.ReportSequence on the sequences table.
type reportSequence struct {
	db *gorm.DB
}

// NewReportSequence creates a report sequence backed by the database.
func NewReportSequence(db *gorm.DB) adapter.ReportSequence {
	return &reportSequence{
		db: db,
	}
}

// Next increments the counter in a transaction so concurrent callers never share a number.
// The counter is seeded from the highest stored report sequence on first use.
func (s *reportSequence) Next(ctx context.Context) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SequenceModel{}).
			Where("name = ?", reportSequenceName).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var max int64
			err := tx.Model(&model.ReportModel{}).Select("COALESCE(MAX(sequence), 0)").Scan(&max).Error
			if err != nil {
				return err
			}

			seed := model.SequenceModel{Name: reportSequenceName, Value: max + 1}
			seeded := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed)
			if seeded.Error != nil {
				return seeded.Error
			}
			// Another writer seeded first.
			if seeded.RowsAffected == 0 {
				if err := tx.Model(&model.SequenceModel{}).
					Where("name = ?", reportSequenceName).
					UpdateColumn("value", gorm.Expr("value + 1")).Error; err != nil {
					return err
				}
			}
		}

		var seq model.SequenceModel
		if err := tx.Where("name = ?", reportSequenceName).First(&seq).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	return next, err
}
