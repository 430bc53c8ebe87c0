package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/wordflash/wordflash/internal/models"
)

// Params holds the tunable constants of the scheduler.
type Params struct {
	InitialEase     float64
	MinEase         float64
	MaxEase         float64
	InitialInterval int
	MaxInterval     int
}

// DefaultParams returns the standard SM-2 parameter set.
func DefaultParams() Params {
	return Params{
		InitialEase:     2.5,
		MinEase:         1.3,
		MaxEase:         2.5,
		InitialInterval: 1,
		MaxInterval:     36500,
	}
}

// Result is the outcome of applying one review to a state.
type Result struct {
	NewLevel     int
	NewInterval  int
	NewEase      float64
	NextReviewAt time.Time
}

const passThreshold = 3

// Next computes the scheduling outcome of reviewing a word with the given
// quality (0=total blackout .. 5=perfect) at the given time. Pure and
// deterministic; the caller persists the result.
//
// quality < 3 resets the level and interval but keeps the updated ease
// factor, so repeated failures still erode ease. The ease factor is
// clamped to [MinEase, MaxEase] on every review.
func (p Params) Next(state models.ReviewState, quality int, now time.Time) (Result, error) {
	if quality < 0 || quality > 5 {
		return Result{}, fmt.Errorf("quality %d out of range [0,5]", quality)
	}

	ease := state.EaseFactor + (0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02))
	if ease < p.MinEase {
		ease = p.MinEase
	}
	if ease > p.MaxEase {
		ease = p.MaxEase
	}

	var level, interval int
	switch {
	case quality < passThreshold:
		level = 0
		interval = p.InitialInterval
	case state.Level == 0:
		level = 1
		interval = 1
	case state.Level == 1:
		level = 2
		interval = 6
	default:
		level = state.Level + 1
		// Round half up; interval growth must be reproducible across runs.
		interval = int(math.Floor(float64(state.IntervalDays)*ease + 0.5))
	}

	if interval < 1 {
		interval = 1
	}
	if interval > p.MaxInterval {
		interval = p.MaxInterval
	}

	return Result{
		NewLevel:     level,
		NewInterval:  interval,
		NewEase:      ease,
		NextReviewAt: now.AddDate(0, 0, interval),
	}, nil
}

// NewState returns the bootstrap state for a word entering the scheduler:
// level 0, initial ease and interval, due immediately.
func (p Params) NewState(wordID string, now time.Time) models.ReviewState {
	return models.ReviewState{
		WordID:       wordID,
		Level:        0,
		EaseFactor:   p.InitialEase,
		IntervalDays: p.InitialInterval,
		NextReviewAt: now,
		CreatedAt:    now,
	}
}

// IsDue reports whether a state is due at the given time. Due-ness compares
// exact timestamps, not calendar days.
func IsDue(state models.ReviewState, now time.Time) bool {
	return !state.NextReviewAt.After(now)
}
