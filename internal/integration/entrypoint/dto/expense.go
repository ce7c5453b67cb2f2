package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// CreateExpenseRequest represents the request body for expense creation.
// ReceiptImage carries the receipt as base64 in JSON.
type CreateExpenseRequest struct {
	Title           string          `json:"title" binding:"required,min=1,max=255"`
	Category        string          `json:"category" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	ExpenseDate     string          `json:"expense_date" binding:"required"`
	Description     string          `json:"description,omitempty" binding:"omitempty,max=1000"`
	ReceiptImage    []byte          `json:"receipt_image,omitempty"`
	ReceiptMIMEType string          `json:"receipt_mime_type,omitempty"`
}

// ReceiptScoresResponse represents the receipt analysis attached to an expense.
type ReceiptScoresResponse struct {
	AmountMatch   float64   `json:"amount_match"`
	CategoryMatch float64   `json:"category_match"`
	Authenticity  float64   `json:"authenticity"`
	Summary       string    `json:"summary"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Title       string                 `json:"title"`
	Category    string                 `json:"category"`
	Amount      string                 `json:"amount"`
	Status      string                 `json:"status"`
	ExpenseDate string                 `json:"expense_date"`
	Description string                 `json:"description,omitempty"`
	AIScores    *ReceiptScoresResponse `json:"ai_scores,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// CreateExpenseResponse represents the response for expense creation.
type CreateExpenseResponse struct {
	Expense        ExpenseResponse `json:"expense"`
	AnalysisQueued bool            `json:"analysis_queued"`
}

// ExpenseListResponse represents a page of expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToExpenseResponse converts a domain Expense to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	response := ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Title:       e.Title,
		Category:    e.Category,
		Amount:      money(e.Amount),
		Status:      string(e.Status),
		ExpenseDate: valueobject.DisplayDate(e.ExpenseDate.UTC()),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.AIScores != nil {
		response.AIScores = &ReceiptScoresResponse{
			AmountMatch:   e.AIScores.AmountMatch,
			CategoryMatch: e.AIScores.CategoryMatch,
			Authenticity:  e.AIScores.Authenticity,
			Summary:       e.AIScores.Summary,
			AnalyzedAt:    e.AIScores.AnalyzedAt,
		}
	}
	return response
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(e)
	}
	return out
}

// ToExpenseListResponse converts a listing result.
func ToExpenseListResponse(result *entity.ExpenseListResult) ExpenseListResponse {
	return ExpenseListResponse{
		Expenses: ToExpenseResponses(result.Expenses),
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
