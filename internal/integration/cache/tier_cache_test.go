package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

type countingTierRepo struct {
	tiers   map[uuid.UUID]*entity.Tier
	finds   int
	upserts int
}

func (r *countingTierRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error) {
	r.finds++
	tier, ok := r.tiers[id]
	if !ok {
		return nil, domainerror.ErrTierNotFound
	}
	copied := *tier
	return &copied, nil
}

func (r *countingTierRepo) Upsert(ctx context.Context, tier *entity.Tier) error {
	r.upserts++
	r.tiers[tier.ID] = tier
	return nil
}

func TestTierCache(t *testing.T) {
	ctx := context.Background()
	tier := entity.NewTier("Gold", []entity.TierCategory{
		{Title: "Travel", MaxAmount: decimal.NewFromInt(200), Enabled: true},
		{Title: "Meals", MaxAmount: decimal.NewFromInt(50), Enabled: false},
	}, decimal.NewFromInt(1000))

	t.Run("serves repeated reads from redis", func(t *testing.T) {
		_, client := newTestRedis(t)
		repo := &countingTierRepo{tiers: map[uuid.UUID]*entity.Tier{tier.ID: tier}}
		cache := NewTierCache(repo, client, 0)

		first, err := cache.FindByID(ctx, tier.ID)
		require.NoError(t, err)
		second, err := cache.FindByID(ctx, tier.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.finds)
		assert.Equal(t, first.Title, second.Title)
		require.Len(t, second.Categories, 2)
		assert.True(t, second.Categories[0].MaxAmount.Equal(decimal.NewFromInt(200)))
		assert.False(t, second.Categories[1].Enabled)
		assert.True(t, second.TotalAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("upsert invalidates the cached tier", func(t *testing.T) {
		_, client := newTestRedis(t)
		repo := &countingTierRepo{tiers: map[uuid.UUID]*entity.Tier{tier.ID: tier}}
		cache := NewTierCache(repo, client, 0)

		_, err := cache.FindByID(ctx, tier.ID)
		require.NoError(t, err)

		updated := *tier
		updated.TotalAmount = decimal.NewFromInt(1500)
		require.NoError(t, cache.Upsert(ctx, &updated))

		got, err := cache.FindByID(ctx, tier.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, 2, repo.finds)
	})

	t.Run("missing tier is not cached", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := &countingTierRepo{tiers: map[uuid.UUID]*entity.Tier{}}
		cache := NewTierCache(repo, client, 0)

		_, err := cache.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrTierNotFound)
		assert.Empty(t, mr.Keys())
	})
}
