package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTier() *entity.Tier {
	return entity.NewTier("Standard", []entity.TierCategory{
		{Title: "Travel", MaxAmount: dec("200"), Enabled: true},
		{Title: "Meals", MaxAmount: dec("50"), Enabled: true},
		{Title: "Lodging", MaxAmount: dec("500"), Enabled: false},
		{Title: "TRAVEL", MaxAmount: dec("9999"), Enabled: true},
	}, dec("1000"))
}

func expense(category, amount string) *entity.Expense {
	return &entity.Expense{Category: category, Amount: dec(amount)}
}

func TestSumByCategory(t *testing.T) {
	totals := SumByCategory([]*entity.Expense{
		expense("Travel", "120"),
		expense("meals", "20"),
		expense(" travel ", "90"),
		expense("Meals", "5.50"),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, "Travel", totals[0].Category)
	assert.True(t, dec("210").Equal(totals[0].Amount))
	assert.Equal(t, "meals", totals[1].Category)
	assert.True(t, dec("25.50").Equal(totals[1].Amount))
}

func TestPolicyLimits_CheckCategoryTotals(t *testing.T) {
	limits := NewPolicyLimits(testTier())

	t.Run("accepts totals equal to the cap", func(t *testing.T) {
		err := limits.CheckCategoryTotals([]CategoryTotal{{Category: "travel", Amount: dec("200")}})
		assert.NoError(t, err)
	})

	t.Run("first casing of a duplicated category wins", func(t *testing.T) {
		c, ok := limits.Category("TrAvEl")
		require.True(t, ok)
		assert.True(t, dec("200").Equal(c.MaxAmount))
	})

	t.Run("rejects totals over the cap", func(t *testing.T) {
		totals := SumByCategory([]*entity.Expense{expense("Travel", "120"), expense("Travel", "90")})
		err := limits.CheckCategoryTotals(totals)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrCategoryLimitExceeded))
		assert.Equal(t, domainerror.KindPolicyViolation, domainerror.KindOf(err))
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		err := limits.CheckCategoryTotals([]CategoryTotal{{Category: "Gifts", Amount: dec("1")}})
		assert.True(t, errors.Is(err, domainerror.ErrCategoryNotAllowed))
	})

	t.Run("rejects disabled categories", func(t *testing.T) {
		err := limits.CheckCategoryTotals([]CategoryTotal{{Category: "lodging", Amount: dec("1")}})
		assert.True(t, errors.Is(err, domainerror.ErrCategoryDisabled))
	})

	t.Run("reports the first failing category", func(t *testing.T) {
		err := limits.CheckCategoryTotals([]CategoryTotal{
			{Category: "Gifts", Amount: dec("1")},
			{Category: "Meals", Amount: dec("100")},
		})
		assert.True(t, errors.Is(err, domainerror.ErrCategoryNotAllowed))
	})
}

func TestPolicyLimits_CheckMonthlyTotal(t *testing.T) {
	limits := NewPolicyLimits(testTier())

	assert.NoError(t, limits.CheckMonthlyTotal(dec("800"), dec("200")))

	err := limits.CheckMonthlyTotal(dec("800"), dec("200.01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrTierLimitExceeded))
	assert.Equal(t, domainerror.KindPolicyViolation, domainerror.KindOf(err))
}
