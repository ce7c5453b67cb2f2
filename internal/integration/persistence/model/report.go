package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// ReportModel represents the reports table in the database.
type ReportModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Label              string         `gorm:"type:varchar(20);index"`
	Sequence           int64          `gorm:"not null;default:0;uniqueIndex:idx_reports_sequence,where:sequence > 0"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	EventID            *uuid.UUID     `gorm:"type:uuid;index"`
	DraftKey           *string        `gorm:"type:varchar(80);uniqueIndex"` // event:user for auto-created drafts
	Title              string         `gorm:"type:varchar(255);not null"`
	Description        string         `gorm:"type:text"`
	Status             string         `gorm:"type:varchar(20);not null;index"`
	ReportDate         time.Time      `gorm:"not null;index"`
	Reasons            pq.StringArray `gorm:"type:text"`
	ApproverKind       *string        `gorm:"type:varchar(10)"`
	ApproverID         *uuid.UUID     `gorm:"type:uuid"`
	ReimburserKind     *string        `gorm:"type:varchar(10)"`
	ReimburserID       *uuid.UUID     `gorm:"type:uuid"`
	FinanceDescription string         `gorm:"type:text"`
	DecidedAt          *time.Time
	ReimbursedAt       *time.Time `gorm:"index"`
	Version            int        `gorm:"not null;default:1"`
	CreatedAt          time.Time  `gorm:"not null;index"`
	UpdatedAt          time.Time  `gorm:"not null"`

	Expenses []ReportExpenseModel `gorm:"foreignKey:ReportID;references:ID"`
}

// TableName returns the table name for the ReportModel.
func (ReportModel) TableName() string {
	return "reports"
}

// ReportExpenseModel links a report to one of its expenses, keeping order.
type ReportExpenseModel struct {
	ReportID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExpenseID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position  int       `gorm:"not null"`
}

// TableName returns the table name for the ReportExpenseModel.
func (ReportExpenseModel) TableName() string {
	return "report_expenses"
}

// ToEntity converts a ReportModel with its expense links to a domain Report entity.
func (m *ReportModel) ToEntity() *entity.Report {
	expenseIDs := make([]uuid.UUID, len(m.Expenses))
	for i, e := range m.Expenses {
		expenseIDs[i] = e.ExpenseID
	}

	reasons := []string(m.Reasons)
	if reasons == nil {
		reasons = []string{}
	}

	return &entity.Report{
		ID:                 m.ID,
		Label:              m.Label,
		Sequence:           m.Sequence,
		UserID:             m.UserID,
		EventID:            m.EventID,
		Title:              m.Title,
		Description:        m.Description,
		ExpenseIDs:         expenseIDs,
		Status:             entity.ReportStatus(m.Status),
		ReportDate:         m.ReportDate,
		Reasons:            reasons,
		Approver:           principalFromColumns(m.ApproverKind, m.ApproverID),
		Reimburser:         principalFromColumns(m.ReimburserKind, m.ReimburserID),
		FinanceDescription: m.FinanceDescription,
		DecidedAt:          m.DecidedAt,
		ReimbursedAt:       m.ReimbursedAt,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ReportFromEntity creates a ReportModel from a domain Report entity.
// Expense links are returned separately by ReportExpensesFromEntity.
func ReportFromEntity(report *entity.Report) *ReportModel {
	approverKind, approverID := principalColumns(report.Approver)
	reimburserKind, reimburserID := principalColumns(report.Reimburser)

	return &ReportModel{
		ID:                 report.ID,
		Label:              report.Label,
		Sequence:           report.Sequence,
		UserID:             report.UserID,
		EventID:            report.EventID,
		Title:              report.Title,
		Description:        report.Description,
		Status:             string(report.Status),
		ReportDate:         report.ReportDate,
		Reasons:            pq.StringArray(report.Reasons),
		ApproverKind:       approverKind,
		ApproverID:         approverID,
		ReimburserKind:     reimburserKind,
		ReimburserID:       reimburserID,
		FinanceDescription: report.FinanceDescription,
		DecidedAt:          report.DecidedAt,
		ReimbursedAt:       report.ReimbursedAt,
		Version:            report.Version,
		CreatedAt:          report.CreatedAt,
		UpdatedAt:          report.UpdatedAt,
	}
}

// ReportExpensesFromEntity creates the ordered expense links of a report.
func ReportExpensesFromEntity(report *entity.Report) []ReportExpenseModel {
	links := make([]ReportExpenseModel, len(report.ExpenseIDs))
	for i, id := range report.ExpenseIDs {
		links[i] = ReportExpenseModel{ReportID: report.ID, ExpenseID: id, Position: i}
	}
	return links
}
