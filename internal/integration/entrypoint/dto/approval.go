package dto

import (
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
)

// DecisionRequest represents the request body for an approval decision.
type DecisionRequest struct {
	Status     string   `json:"status" binding:"required,oneof=approved rejected"`
	ExpenseIDs []string `json:"expense_ids" binding:"required,min=1"`
	Reason     string   `json:"reason,omitempty" binding:"omitempty,max=2000"`
}

// DecisionResponse represents the response for an approval decision.
type DecisionResponse struct {
	Report   ReportResponse `json:"report"`
	Approved []string       `json:"approved"`
	Rejected []string       `json:"rejected"`
}

// ReimburseRequest represents the request body for reimbursing a report.
type ReimburseRequest struct {
	FinanceDescription string          `json:"finance_description,omitempty" binding:"omitempty,max=2000"`
	DeductionAmount    decimal.Decimal `json:"deduction_amount"`
}

// ReimburseResponse represents the response for a reimbursement.
type ReimburseResponse struct {
	Report    ReportResponse     `json:"report"`
	Deduction *DeductionResponse `json:"deduction,omitempty"`
}

// ToDecisionResponse converts a decision output.
func ToDecisionResponse(output *approval.DecideApprovalOutput) DecisionResponse {
	return DecisionResponse{
		Report:   ToReportResponse(output.Report),
		Approved: idStrings(output.Approved),
		Rejected: idStrings(output.Rejected),
	}
}

// ToReimburseResponse converts a reimbursement output.
func ToReimburseResponse(output *approval.ReimburseOutput) ReimburseResponse {
	response := ReimburseResponse{Report: ToReportResponse(output.Report)}
	if output.Deduction != nil {
		d := ToDeductionResponse(output.Deduction)
		response.Deduction = &d
	}
	return response
}
