package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/usecase/wallet"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// RecordAdvanceRequest represents the request body for recording an advance.
type RecordAdvanceRequest struct {
	ReceiverID    string          `json:"receiver_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status" binding:"required,oneof=pending completed"`
	PaymentMethod string          `json:"payment_method,omitempty" binding:"omitempty,max=100"`
	Note          string          `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// SettleAdvanceRequest represents the request body for settling an advance.
type SettleAdvanceRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// RecordDeductionRequest represents the request body for a manual wallet deduction.
type RecordDeductionRequest struct {
	UserID      string          `json:"user_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=1000"`
}

// WalletEntryResponse is one line of the wallet history.
type WalletEntryResponse struct {
	RecordID    string    `json:"record_id"`
	DisplayID   string    `json:"display_id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	DisplayDate string    `json:"display_date"`
}

// WalletResponse represents the caller's wallet for the current month.
type WalletResponse struct {
	TotalAmount   string                `json:"total_amount"`
	TotalExpenses string                `json:"total_expenses"`
	BalanceAmount string                `json:"balance_amount"`
	Entries       []WalletEntryResponse `json:"entries"`
	WindowStart   time.Time             `json:"window_start"`
	WindowEnd     time.Time             `json:"window_end"`
}

// WalletUsedResponse represents the wallet money used in the current month.
type WalletUsedResponse struct {
	Used        string    `json:"used"`
	Count       int       `json:"count"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// TransactionResponse represents an advance in API responses.
type TransactionResponse struct {
	ID            string             `json:"id"`
	SenderID      string             `json:"sender_id"`
	ReceiverID    string             `json:"receiver_id"`
	Amount        string             `json:"amount"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	PaidBy        *PrincipalResponse `json:"paid_by,omitempty"`
	PaidOn        *time.Time         `json:"paid_on,omitempty"`
	Note          string             `json:"note,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DeductionResponse represents a deduction in API responses.
type DeductionResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Amount      string            `json:"amount"`
	DeductedBy  PrincipalResponse `json:"deducted_by"`
	ReportID    *string           `json:"report_id,omitempty"`
	Mode        string            `json:"mode"`
	Active      bool              `json:"active"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ToWalletResponse converts a wallet output.
func ToWalletResponse(output *wallet.GetWalletOutput) WalletResponse {
	entries := make([]WalletEntryResponse, len(output.Wallet.Entries))
	for i, e := range output.Wallet.Entries {
		entries[i] = WalletEntryResponse{
			RecordID:    e.RecordID,
			DisplayID:   e.DisplayID,
			Kind:        string(e.Kind),
			Amount:      money(e.Amount),
			Description: e.Description,
			Date:        e.Date,
			DisplayDate: valueobject.DisplayDate(e.Date.UTC()),
		}
	}
	return WalletResponse{
		TotalAmount:   money(output.Wallet.TotalAmount),
		TotalExpenses: money(output.Wallet.TotalExpenses),
		BalanceAmount: money(output.Wallet.BalanceAmount),
		Entries:       entries,
		WindowStart:   output.Window.Start,
		WindowEnd:     output.Window.End,
	}
}

// ToWalletUsedResponse converts a wallet usage output.
func ToWalletUsedResponse(output *wallet.GetWalletUsedOutput) WalletUsedResponse {
	return WalletUsedResponse{
		Used:        money(output.Used),
		Count:       output.Count,
		WindowStart: output.Window.Start,
		WindowEnd:   output.Window.End,
	}
}

// ToTransactionResponse converts a domain Transaction.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		SenderID:      t.SenderID.String(),
		ReceiverID:    t.ReceiverID.String(),
		Amount:        money(t.Amount),
		Status:        string(t.Status),
		PaymentMethod: t.PaymentMethod,
		PaidBy:        optionalPrincipal(t.PaidBy),
		PaidOn:        optionalTime(t.PaidOn),
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToDeductionResponse converts a domain Deduction.
func ToDeductionResponse(d *entity.Deduction) DeductionResponse {
	return DeductionResponse{
		ID:          d.ID.String(),
		UserID:      d.UserID.String(),
		Amount:      money(d.Amount),
		DeductedBy:  PrincipalResponse{Kind: string(d.DeductedBy.Kind), ID: d.DeductedBy.ID.String()},
		ReportID:    optionalID(d.ReportID),
		Mode:        string(d.Mode),
		Active:      d.Active,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}
