// Package mascot animates the character on the main page: periodic blinks,
// an occasional blush and a slow vertical bob. Everything advances from the
// timestamps passed to Update, so the animator never sleeps or spawns
// goroutines.
package mascot

import (
	"math"
	"math/rand"
	"time"
)

// Mood selects the sprite set.
type Mood int

const (
	MoodNormal Mood = iota
	MoodBlush
)

func (mood Mood) String() string {
	if mood == MoodBlush {
		return "blush"
	}
	return "normal"
}

// Eye frames of a sprite set.
const (
	FrameOpen = iota
	FrameHalf
	FrameClosed
	FrameCount
)

var blinkSequence = [...]int{FrameOpen, FrameHalf, FrameClosed, FrameHalf, FrameOpen}

// Frame is what the renderer draws.
type Frame struct {
	Mood  Mood
	Index int
	// Bob is the vertical offset in pixels.
	Bob float64
}

// Animator is owned by the frame loop and is not safe for concurrent use.
type Animator struct {
	config Config
	rng    *rand.Rand
	start  time.Time

	mood       Mood
	nextMood   time.Time
	index      int
	blinking   bool
	step       int
	lastBlink  time.Time
	blinkDelay time.Duration
	lastStep   time.Time
}

// New creates an animator starting at now. A nil rng is seeded from the clock.
func New(config Config, rng *rand.Rand, now time.Time) *Animator {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	if config.BlinkFrame <= 0 {
		config.BlinkFrame = DefaultConfig().BlinkFrame
	}
	return &Animator{
		config:     config,
		rng:        rng,
		start:      now,
		nextMood:   now,
		lastBlink:  now,
		blinkDelay: config.BlinkInterval.Random(rng),
	}
}

// Update advances the animation to now and returns the frame to draw.
func (animator *Animator) Update(now time.Time) Frame {
	if now.After(animator.nextMood) {
		if animator.mood == MoodNormal && animator.rng.Float64() < animator.config.BlushChance {
			animator.mood = MoodBlush
			animator.nextMood = now.Add(animator.config.BlushDuration.Random(animator.rng))
		} else {
			animator.mood = MoodNormal
			animator.nextMood = now.Add(animator.config.CalmDuration.Random(animator.rng))
		}
	}

	if !animator.blinking && now.Sub(animator.lastBlink) > animator.blinkDelay {
		animator.blinking = true
		animator.step = 0
		animator.lastBlink = now
		animator.blinkDelay = animator.config.BlinkInterval.Random(animator.rng)
	}
	if animator.blinking && now.Sub(animator.lastStep) > animator.config.BlinkFrame {
		animator.index = blinkSequence[animator.step]
		animator.step++
		animator.lastStep = now
		if animator.step >= len(blinkSequence) {
			animator.blinking = false
			animator.step = 0
		}
	}

	return animator.frameAt(now)
}

// Current returns the frame for now without advancing any state.
func (animator *Animator) Current(now time.Time) Frame {
	return animator.frameAt(now)
}

func (animator *Animator) frameAt(now time.Time) Frame {
	elapsed := float64(now.Sub(animator.start).Milliseconds())
	return Frame{
		Mood:  animator.mood,
		Index: animator.index,
		Bob:   math.Sin(elapsed*animator.config.BobRate) * animator.config.BobAmplitude,
	}
}

// ColonAlpha is the opacity of the blinking clock separator at elapsed time.
func ColonAlpha(elapsed time.Duration) uint8 {
	value := (math.Sin(float64(elapsed.Milliseconds())*0.002) + 1) / 2 * 255
	return uint8(math.Round(value))
}
