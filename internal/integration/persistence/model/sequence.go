package model

// SequenceModel represents the sequences table holding named counters.
type SequenceModel struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the SequenceModel.
func (SequenceModel) TableName() string {
	return "sequences"
}

// All returns every model managed by migrations.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&AdminModel{},
		&TierModel{},
		&TierCategoryModel{},
		&ExpenseModel{},
		&ReportModel{},
		&ReportExpenseModel{},
		&EventModel{},
		&DeductionModel{},
		&TransactionModel{},
		&NotificationModel{},
		&SequenceModel{},
		&EmailQueueModel{},
	}
}
