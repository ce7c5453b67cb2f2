// Package cache implements adapters backed by Redis.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
)

// ReportSequenceKey is the Redis key holding the last assigned report number.
const ReportSequenceKey = "reimburse:report_sequence"

// nextSequenceScript increments the counter and lifts it past the floor when
// it is missing or behind. It returns the reserved number and whether the
// floor was applied.
var nextSequenceScript = redis.NewScript(`
local value = redis.call("INCR", KEYS[1])
local floor = tonumber(ARGV[1])
if value <= floor then
	value = floor + 1
	redis.call("SET", KEYS[1], value)
	return {value, 1}
end
return {value, 0}
`)

// seedSource provides the highest report number already stored.
type seedSource interface {
	MaxSequence(ctx context.Context) (int64, error)
}

// reportSequence implements adapter.ReportSequence with Redis INCR.
type reportSequence struct {
	client *redis.Client
	seed   seedSource
}

// NewReportSequence creates a Redis report sequence. Every reservation is
// floored at the highest stored sequence, so a lost or evicted key never
// hands out a number twice.
func NewReportSequence(client *redis.Client, seed seedSource) adapter.ReportSequence {
	return &reportSequence{
		client: client,
		seed:   seed,
	}
}

// Next atomically reserves the next report number.
func (s *reportSequence) Next(ctx context.Context) (int64, error) {
	floor, err := s.seed.MaxSequence(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read highest report sequence: %w", err)
	}

	reply, err := nextSequenceScript.Run(ctx, s.client, []string{ReportSequenceKey}, floor).Int64Slice()
	if err != nil {
		return 0, fmt.Errorf("failed to increment report sequence: %w", err)
	}
	if len(reply) != 2 {
		return 0, fmt.Errorf("unexpected report sequence reply %v", reply)
	}

	if reply[1] == 1 && floor > 0 {
		zap.L().Warn("report sequence was behind stored reports, moved forward",
			zap.Int64("floor", floor),
			zap.Int64("value", reply[0]),
		)
	}
	return reply[0], nil
}
