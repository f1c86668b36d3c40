package mascot

import (
	"math/rand"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range, both ends inclusive.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)+1))
}

// Config contains animation timing values.
type Config struct {
	BlinkFrame    time.Duration
	BlinkInterval Range

	BlushChance   float64
	BlushDuration Range
	CalmDuration  Range

	BobAmplitude float64
	BobRate      float64
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		BlinkFrame: 75 * time.Millisecond,
		BlinkInterval: Range{
			Min: 2 * time.Second,
			Max: 5 * time.Second,
		},
		BlushChance: 0.4,
		BlushDuration: Range{
			Min: 5 * time.Second,
			Max: 8 * time.Second,
		},
		CalmDuration: Range{
			Min: 10 * time.Second,
			Max: 20 * time.Second,
		},
		BobAmplitude: 5,
		BobRate:      0.001,
	}
}
