package utils

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// ReservationRandomBits is the width of the random suffix of a reservation
// id. The remaining 41 high bits hold milliseconds since the epoch.
const ReservationRandomBits = 23

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// RandomSource returns a value in [0, n).
type RandomSource interface {
	Int64N(n int64) int64
}

type globalRandom struct{}

// Int64N uses the package level generator, which is safe for concurrent use.
func (globalRandom) Int64N(n int64) int64 { return rand.Int64N(n) }

// SystemRandom is the default source for reservation ids.
var SystemRandom RandomSource = globalRandom{}

// ReservationIDGenerator mints 64-bit reservation ids: elapsed milliseconds
// since epoch in the high bits, a random value in the low 23 bits.
// Ids from a clock that moves backwards may collide.
type ReservationIDGenerator struct {
	clock  Clock
	epoch  time.Time
	random RandomSource
}

func NewReservationIDGenerator(clock Clock, epoch time.Time, random RandomSource) *ReservationIDGenerator {
	return &ReservationIDGenerator{
		clock:  clock,
		epoch:  epoch,
		random: random,
	}
}

func (g *ReservationIDGenerator) Next() int64 {
	elapsed := g.clock.Now().Sub(g.epoch).Milliseconds()
	return elapsed<<ReservationRandomBits | g.random.Int64N(1<<ReservationRandomBits)
}

// ==================== UUID ====================

func GenerateUUIDString() string {
	return uuid.New().String()
}
