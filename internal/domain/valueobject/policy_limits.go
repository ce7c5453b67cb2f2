// Package valueobject contains domain value objects for the reimbursement back office.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// CategoryKey normalizes a category title for case-insensitive matching.
func CategoryKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// CategoryTotal is the aggregated amount requested for one category.
type CategoryTotal struct {
	Category string // Title as first seen on the expenses
	Amount   decimal.Decimal
}

// SumByCategory aggregates expense amounts per normalized category, keeping
// the order in which categories first appear.
func SumByCategory(expenses []*entity.Expense) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)

	for _, e := range expenses {
		key := CategoryKey(e.Category)
		if i, ok := index[key]; ok {
			totals[i].Amount = totals[i].Amount.Add(e.Amount)
			continue
		}
		index[key] = len(totals)
		totals = append(totals, CategoryTotal{Category: e.Category, Amount: e.Amount})
	}

	return totals
}

// SumAmounts returns the total of all expense amounts.
func SumAmounts(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// PolicyLimits is a tier's category caps indexed by normalized key.
// It is built once per tier read and never mutated.
type PolicyLimits struct {
	tierID     string
	categories map[string]entity.TierCategory
	total      decimal.Decimal
}

// NewPolicyLimits indexes the categories of a tier. When a tier lists the same
// category twice under different casing, the first entry wins.
func NewPolicyLimits(tier *entity.Tier) *PolicyLimits {
	categories := make(map[string]entity.TierCategory, len(tier.Categories))
	for _, c := range tier.Categories {
		key := CategoryKey(c.Title)
		if _, exists := categories[key]; exists {
			continue
		}
		categories[key] = c
	}

	return &PolicyLimits{
		tierID:     tier.ID.String(),
		categories: categories,
		total:      tier.TotalAmount,
	}
}

// Category looks up a category by any casing of its title.
func (p *PolicyLimits) Category(title string) (entity.TierCategory, bool) {
	c, ok := p.categories[CategoryKey(title)]
	return c, ok
}

// CheckCategoryTotals verifies every category total against the tier.
// Totals equal to the cap are accepted.
func (p *PolicyLimits) CheckCategoryTotals(totals []CategoryTotal) error {
	for _, t := range totals {
		c, ok := p.Category(t.Category)
		if !ok {
			return domainerror.New(domainerror.ErrCodeCategoryNotAllowed,
				fmt.Sprintf("%s is not allowed for your tier", t.Category), domainerror.ErrCategoryNotAllowed)
		}
		if !c.Enabled {
			return domainerror.New(domainerror.ErrCodeCategoryDisabled,
				fmt.Sprintf("%s is disabled for your tier", c.Title), domainerror.ErrCategoryDisabled)
		}
		if t.Amount.GreaterThan(c.MaxAmount) {
			return domainerror.New(domainerror.ErrCodeCategoryLimitExceeded,
				fmt.Sprintf("%s limit of %s exceeded by %s", c.Title, c.MaxAmount.StringFixed(2), t.Amount.Sub(c.MaxAmount).StringFixed(2)),
				domainerror.ErrCategoryLimitExceeded)
		}
	}
	return nil
}

// CheckMonthlyTotal verifies that spent plus requested stays within the tier cap.
func (p *PolicyLimits) CheckMonthlyTotal(spent, requested decimal.Decimal) error {
	if spent.Add(requested).GreaterThan(p.total) {
		return domainerror.New(domainerror.ErrCodeTierLimitExceeded,
			fmt.Sprintf("monthly limit of %s exceeded: %s already approved, %s requested",
				p.total.StringFixed(2), spent.StringFixed(2), requested.StringFixed(2)),
			domainerror.ErrTierLimitExceeded)
	}
	return nil
}
