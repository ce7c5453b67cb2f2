// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// ReceiptAnalysisRequest carries a receipt image and what the expense claims.
type ReceiptAnalysisRequest struct {
	Image    []byte
	MIMEType string
	Amount   decimal.Decimal
	Category string
	Title    string
}

// ReceiptAnalyzer defines the interface for receipt analysis.
type ReceiptAnalyzer interface {
	// Analyze scores how well the receipt supports the claimed expense.
	Analyze(ctx context.Context, request *ReceiptAnalysisRequest) (*entity.ReceiptScores, error)

	// IsAvailable checks if the analyzer is properly configured.
	IsAvailable() bool
}
