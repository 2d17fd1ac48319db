package provider

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/idprovider/internal/clock"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// sequence returns a source replaying values, repeating the last one forever.
func sequence(values ...int64) (func() int64, *int) {
	calls := 0
	return func() int64 {
		idx := calls
		if idx >= len(values) {
			idx = len(values) - 1
		}
		calls++
		return values[idx]
	}, &calls
}

func TestProvider_Pop_Reserved(t *testing.T) {
	p := New([]int64{5, 7, 9}, WithLogger(quietLogger()))
	assert.Equal(t, int64(9), p.Pop())
	assert.Equal(t, int64(7), p.Pop())
	assert.Equal(t, int64(5), p.Pop())
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []int64{9, 7, 5}, p.Issued())
}

func TestProvider_Pop_Distinct(t *testing.T) {
	p := New(nil)
	seen := map[int64]bool{}
	for i := 0; i < 10000; i++ {
		id := p.Pop()
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, 10000, p.IssuedCount())
}

func TestProvider_Pop_NonNegative(t *testing.T) {
	p := New(nil)
	assert.GreaterOrEqual(t, p.Pop(), int64(0))
}

func TestProvider_Pop_IgnoresArguments(t *testing.T) {
	src1, _ := sequence(11, 12)
	src2, _ := sequence(11, 12)
	a := New([]int64{1}, WithSource(src1), WithLogger(quietLogger()))
	b := New([]int64{1}, WithSource(src2), WithLogger(quietLogger()))

	assert.Equal(t, a.Pop(), b.Pop(1, 2, 3))
	assert.Equal(t, a.Pop(), b.Pop("x", nil))
	assert.Equal(t, a.Issued(), b.Issued())
}

func TestProvider_Pop_Regenerates(t *testing.T) {
	testCases := []struct {
		name       string
		reserved   []int64
		draws      []int64
		expect     []int64
		collisions uint64
	}{
		{
			name:       "collision with generated id",
			draws:      []int64{42, 42, 42, 43},
			expect:     []int64{42, 43},
			collisions: 2,
		},
		{
			name:       "collision with issued reserved id",
			reserved:   []int64{42},
			draws:      []int64{42, 100},
			expect:     []int64{42, 100},
			collisions: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, _ := sequence(tc.draws...)
			p := New(tc.reserved, WithSource(src), WithLogger(quietLogger()))
			var actual []int64
			for range tc.expect {
				actual = append(actual, p.Pop())
			}
			assert.Equal(t, tc.expect, actual)
			assert.Equal(t, tc.collisions, p.Snapshot().Collisions)
		})
	}
}

func TestProvider_MaxRetries(t *testing.T) {
	src, calls := sequence(7)
	p := New(nil, WithSource(src), WithMaxRetries(2), WithLogger(quietLogger()))
	assert.Equal(t, int64(7), p.Pop())

	*calls = 0
	_, err := p.Next(context.Background())
	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, 1, p.IssuedCount())

	assert.PanicsWithError(t, "provider: retries exhausted: 3 draws collided", func() { p.Pop() })
}

func TestProvider_Next_Cancelled(t *testing.T) {
	src, _ := sequence(7)
	p := New(nil, WithSource(src), WithLogger(quietLogger()))
	p.Pop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProvider_NextWithOrigin(t *testing.T) {
	src, _ := sequence(100)
	p := New([]int64{3}, WithSource(src), WithLogger(quietLogger()))

	id, origin, err := p.NextWithOrigin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, OriginReserved, origin)

	id, origin, err = p.NextWithOrigin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	assert.Equal(t, OriginGenerated, origin)
}

func TestProvider_OwnsReservedPool(t *testing.T) {
	reserved := []int64{1, 2, 3}
	p := New(reserved, WithLogger(quietLogger()))
	reserved[2] = 99
	assert.Equal(t, int64(3), p.Pop())

	p.Pop()
	assert.Equal(t, []int64{1, 2, 99}, reserved)

	// Providers built without a pool never share one.
	a := New(nil)
	b := New(nil)
	a.reserved = append(a.reserved, 10)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, a.Len())
}

func TestProvider_Independent(t *testing.T) {
	src1, _ := sequence(1, 2, 3)
	src2, _ := sequence(1, 2, 3)
	a := New(nil, WithSource(src1))
	b := New(nil, WithSource(src2))
	assert.Equal(t, a.Pop(), b.Pop())
	assert.True(t, a.Contains(1))
	assert.True(t, b.Contains(1))
}

func TestProvider_Concurrent(t *testing.T) {
	p := New([]int64{1, 2, 3, 4, 5}, WithLogger(quietLogger()))
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int64]int{}
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				id := p.Pop()
				mu.Lock()
				seen[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 4000)
	assert.Equal(t, 4000, p.IssuedCount())
}

func TestProvider_Snapshot(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	defer clock.Freeze(now)()

	src, _ := sequence(20, 20, 21)
	p := New([]int64{1, 2, 3}, WithSource(src), WithLogger(quietLogger()))
	p.Pop()

	snapshot := p.Snapshot()
	assert.Equal(t, []int64{1, 2}, snapshot.Reserved)
	assert.Equal(t, []int64{3}, snapshot.Issued)
	assert.Equal(t, uint64(1), snapshot.FromReserved)
	assert.Equal(t, now, snapshot.TakenAt)

	p.Pop()
	p.Pop()
	p.Pop()
	p.Pop()
	snapshot = p.Snapshot()
	assert.Empty(t, snapshot.Reserved)
	assert.Equal(t, []int64{3, 2, 1, 20, 21}, snapshot.Issued)
	assert.Equal(t, uint64(3), snapshot.FromReserved)
	assert.Equal(t, uint64(2), snapshot.Generated)
	assert.Equal(t, uint64(1), snapshot.Collisions)

	snapshot.Issued[0] = -1
	assert.Equal(t, int64(3), p.Issued()[0])
}

func TestProvider_Stats(t *testing.T) {
	src, _ := sequence(20, 20, 21)
	p := New([]int64{1, 2, 3}, WithSource(src), WithLogger(quietLogger()))
	assert.Equal(t, Stats{Remaining: 3}, p.Stats())

	for i := 0; i < 5; i++ {
		p.Pop()
	}
	assert.Equal(t, Stats{Issued: 5, FromReserved: 3, Generated: 2, Collisions: 1}, p.Stats())
}

func TestProvider_Pop_ReservedDuplicates(t *testing.T) {
	// Reserved identifiers are issued as supplied, without a history check.
	src, _ := sequence(1, 2)
	p := New([]int64{1, 1}, WithSource(src), WithLogger(quietLogger()))
	assert.Equal(t, int64(1), p.Pop())
	assert.Equal(t, int64(1), p.Pop())
	assert.Equal(t, int64(2), p.Pop())
	assert.Equal(t, uint64(1), p.Snapshot().Collisions)
}
