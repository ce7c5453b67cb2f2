package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// CreateReportRequest represents the request body for report creation.
type CreateReportRequest struct {
	EventID     *string  `json:"event_id,omitempty"`
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	ExpenseIDs  []string `json:"expense_ids" binding:"required,min=1"`
	ReportDate  *string  `json:"report_date,omitempty"`
}

// UpdateReportRequest represents the request body for report updates.
// A nil ExpenseIDs leaves the expense list untouched.
type UpdateReportRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	ExpenseIDs  []string `json:"expense_ids,omitempty"`
	Submit      bool     `json:"submit,omitempty"`
}

// ReportResponse represents a single report in API responses.
type ReportResponse struct {
	ID                 string             `json:"id"`
	Label              string             `json:"label"`
	UserID             string             `json:"user_id"`
	EventID            *string            `json:"event_id,omitempty"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	ExpenseIDs         []string           `json:"expense_ids"`
	Status             string             `json:"status"`
	ReportDate         string             `json:"report_date"`
	Reasons            []string           `json:"reasons"`
	Approver           *PrincipalResponse `json:"approver,omitempty"`
	Reimburser         *PrincipalResponse `json:"reimburser,omitempty"`
	FinanceDescription string             `json:"finance_description,omitempty"`
	DecidedAt          *time.Time         `json:"decided_at,omitempty"`
	ReimbursedAt       *time.Time         `json:"reimbursed_at,omitempty"`
	Version            int                `json:"version"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ReportSummaryResponse is a report row in listings.
type ReportSummaryResponse struct {
	ReportResponse
	TotalAmount  string `json:"total_amount"`
	ExpenseCount int    `json:"expense_count"`
}

// ReportDetailResponse is a report with its expenses.
type ReportDetailResponse struct {
	Report      ReportResponse    `json:"report"`
	Expenses    []ExpenseResponse `json:"expenses"`
	TotalAmount string            `json:"total_amount"`
}

// UpdateReportResponse represents the response for report updates.
type UpdateReportResponse struct {
	Report  ReportResponse `json:"report"`
	Added   []string       `json:"added"`
	Removed []string       `json:"removed"`
}

// ReportListResponse represents a page of reports.
type ReportListResponse struct {
	Reports    []ReportSummaryResponse `json:"reports"`
	Pagination PaginationResponse      `json:"pagination"`
}

// ToReportResponse converts a domain Report to a ReportResponse DTO.
func ToReportResponse(r *entity.Report) ReportResponse {
	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return ReportResponse{
		ID:                 r.ID.String(),
		Label:              r.Label,
		UserID:             r.UserID.String(),
		EventID:            optionalID(r.EventID),
		Title:              r.Title,
		Description:        r.Description,
		ExpenseIDs:         idStrings(r.ExpenseIDs),
		Status:             string(r.Status),
		ReportDate:         valueobject.DisplayDate(r.ReportDate.UTC()),
		Reasons:            reasons,
		Approver:           optionalPrincipal(r.Approver),
		Reimburser:         optionalPrincipal(r.Reimburser),
		FinanceDescription: r.FinanceDescription,
		DecidedAt:          optionalTime(r.DecidedAt),
		ReimbursedAt:       optionalTime(r.ReimbursedAt),
		Version:            r.Version,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToReportDetailResponse converts a report with its expenses.
func ToReportDetailResponse(r *entity.Report, expenses []*entity.Expense, total decimal.Decimal) ReportDetailResponse {
	return ReportDetailResponse{
		Report:      ToReportResponse(r),
		Expenses:    ToExpenseResponses(expenses),
		TotalAmount: money(total),
	}
}

// ToReportListResponse converts a listing result.
func ToReportListResponse(result *entity.ReportListResult) ReportListResponse {
	reports := make([]ReportSummaryResponse, len(result.Reports))
	for i, s := range result.Reports {
		reports[i] = ReportSummaryResponse{
			ReportResponse: ToReportResponse(s.Report),
			TotalAmount:    money(s.TotalAmount),
			ExpenseCount:   s.ExpenseCount,
		}
	}
	return ReportListResponse{
		Reports: reports,
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
