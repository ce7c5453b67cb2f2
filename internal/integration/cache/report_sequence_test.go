package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSeed struct {
	max   int64
	err   error
	calls int
}

func (s *stubSeed) MaxSequence(ctx context.Context) (int64, error) {
	s.calls++
	return s.max, s.err
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestReportSequence_Next(t *testing.T) {
	ctx := context.Background()

	t.Run("continues from the highest stored sequence", func(t *testing.T) {
		_, client := newTestRedis(t)
		seed := &stubSeed{max: 2}
		seq := NewReportSequence(client, seed)

		first, err := seq.Next(ctx)
		require.NoError(t, err)
		second, err := seq.Next(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), first)
		assert.Equal(t, int64(4), second)
		assert.Equal(t, 2, seed.calls)
	})

	t.Run("a lost counter resumes after the stored reports", func(t *testing.T) {
		mr, client := newTestRedis(t)
		seed := &stubSeed{max: 5}
		seq := NewReportSequence(client, seed)

		first, err := seq.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(6), first)

		seed.max = first
		mr.FlushAll()

		second, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), second)
	})

	t.Run("a counter behind the stored reports is moved forward", func(t *testing.T) {
		mr, client := newTestRedis(t)
		require.NoError(t, mr.Set(ReportSequenceKey, "3"))
		seq := NewReportSequence(client, &stubSeed{max: 9})

		next, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), next)

		stored, err := mr.Get(ReportSequenceKey)
		require.NoError(t, err)
		assert.Equal(t, "10", stored)
	})

	t.Run("does not overwrite an existing counter", func(t *testing.T) {
		mr, client := newTestRedis(t)
		require.NoError(t, mr.Set(ReportSequenceKey, "41"))
		seq := NewReportSequence(client, &stubSeed{max: 2})

		next, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(42), next)
	})

	t.Run("seed failure is reported and retried", func(t *testing.T) {
		_, client := newTestRedis(t)
		seed := &stubSeed{err: errors.New("db down")}
		seq := NewReportSequence(client, seed)

		_, err := seq.Next(ctx)
		require.Error(t, err)

		seed.err = nil
		next, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), next)
		assert.Equal(t, 2, seed.calls)
	})

	t.Run("concurrent callers get distinct numbers", func(t *testing.T) {
		_, client := newTestRedis(t)
		seq := NewReportSequence(client, &stubSeed{})

		const workers = 20
		results := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := seq.Next(ctx)
				if err == nil {
					results <- n
				}
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool)
		for n := range results {
			assert.False(t, seen[n], "duplicate sequence %d", n)
			seen[n] = true
		}
		assert.Len(t, seen, workers)
	})
}
