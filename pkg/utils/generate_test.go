package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

type sequenceRandom struct {
	values []int64
	bounds []int64
}

func (r *sequenceRandom) Int64N(n int64) int64 {
	r.bounds = append(r.bounds, n)
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

func TestReservationIDGenerator_Next(t *testing.T) {
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{now: epoch.Add(1234 * time.Millisecond), step: time.Millisecond}
	random := &sequenceRandom{values: []int64{7, 0, 1<<23 - 1, 42}}

	gen := NewReservationIDGenerator(clock, epoch, random)

	var ids []int64
	for i := 0; i < 4; i++ {
		ids = append(ids, gen.Next())
	}

	assert.Equal(t, int64(1234)<<23|7, ids[0])
	assert.Equal(t, int64(1235)<<23|0, ids[1])
	assert.Equal(t, int64(1236)<<23|(1<<23-1), ids[2])
	assert.Equal(t, int64(1237)<<23|42, ids[3])

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
		assert.Equal(t, int64(1234+i), ids[i]>>ReservationRandomBits)
	}

	for _, bound := range random.bounds {
		assert.Equal(t, int64(1)<<23, bound)
	}
}

func TestReservationIDGenerator_SameMillisecond(t *testing.T) {
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{now: epoch.Add(time.Hour)}
	random := &sequenceRandom{values: []int64{1, 2}}

	gen := NewReservationIDGenerator(clock, epoch, random)
	first, second := gen.Next(), gen.Next()

	require.NotEqual(t, first, second)
	assert.Equal(t, first>>ReservationRandomBits, second>>ReservationRandomBits)
}

func TestReservationIDGenerator_SystemSources(t *testing.T) {
	gen := NewReservationIDGenerator(SystemClock, time.Now().Add(-time.Minute), SystemRandom)

	id := gen.Next()
	assert.Positive(t, id)
	assert.GreaterOrEqual(t, id>>ReservationRandomBits, int64(60_000))
}
