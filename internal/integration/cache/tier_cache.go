package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// DefaultTierTTL bounds how long a cached tier may be served.
const DefaultTierTTL = 10 * time.Minute

type cachedCategory struct {
	Title     string          `json:"title"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	Enabled   bool            `json:"enabled"`
}

type cachedTier struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Categories  []cachedCategory `json:"categories"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// tierCache decorates a TierRepository with a Redis read-through cache.
type tierCache struct {
	next   adapter.TierRepository
	client *redis.Client
	ttl    time.Duration
}

// NewTierCache wraps next so tier reads are served from Redis when possible.
// Upserts go to next first and then drop the cached copy.
func NewTierCache(next adapter.TierRepository, client *redis.Client, ttl time.Duration) adapter.TierRepository {
	if ttl <= 0 {
		ttl = DefaultTierTTL
	}
	return &tierCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func tierKey(id uuid.UUID) string {
	return "reimburse:tier:" + id.String()
}

// FindByID retrieves a tier, consulting Redis before the wrapped repository.
// Cache failures fall back to the repository.
func (c *tierCache) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error) {
	data, err := c.client.Get(ctx, tierKey(id)).Bytes()
	if err == nil {
		var cached cachedTier
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.toEntity(), nil
		}
		zap.L().Warn("discarding malformed cached tier", zap.String("tier_id", id.String()))
	} else if !errors.Is(err, redis.Nil) {
		zap.L().Warn("tier cache read failed", zap.String("tier_id", id.String()), zap.Error(err))
	}

	tier, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(cachedTierFrom(tier)); err == nil {
		if err := c.client.Set(ctx, tierKey(id), encoded, c.ttl).Err(); err != nil {
			zap.L().Warn("tier cache write failed", zap.String("tier_id", id.String()), zap.Error(err))
		}
	}
	return tier, nil
}

// Upsert saves the tier and invalidates its cached copy.
func (c *tierCache) Upsert(ctx context.Context, tier *entity.Tier) error {
	if err := c.next.Upsert(ctx, tier); err != nil {
		return err
	}
	if err := c.client.Del(ctx, tierKey(tier.ID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached tier: %w", err)
	}
	return nil
}

func cachedTierFrom(tier *entity.Tier) cachedTier {
	categories := make([]cachedCategory, len(tier.Categories))
	for i, c := range tier.Categories {
		categories[i] = cachedCategory{Title: c.Title, MaxAmount: c.MaxAmount, Enabled: c.Enabled}
	}
	return cachedTier{
		ID:          tier.ID,
		Title:       tier.Title,
		Categories:  categories,
		TotalAmount: tier.TotalAmount,
		CreatedAt:   tier.CreatedAt,
		UpdatedAt:   tier.UpdatedAt,
	}
}

func (c cachedTier) toEntity() *entity.Tier {
	categories := make([]entity.TierCategory, len(c.Categories))
	for i, cat := range c.Categories {
		categories[i] = entity.TierCategory{Title: cat.Title, MaxAmount: cat.MaxAmount, Enabled: cat.Enabled}
	}
	return &entity.Tier{
		ID:          c.ID,
		Title:       c.Title,
		Categories:  categories,
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
