// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"errors"
	"time"

	"github.com/taibuivan/revenuegear/internal/platform/constants"
)

// Timing holds the durations that drive the reader's transitions.
type Timing struct {
	// Debounce is the minimum spacing between two accepted navigation commands.
	Debounce time.Duration
	// Flip is the full page turn, split into a leave half and a settle half.
	Flip time.Duration
	// Open is the length of the opening animation.
	Open time.Duration
	// Close is the delay before an advance past the last spread closes the reader.
	Close time.Duration
}

// DefaultTiming returns the stock reader timings.
func DefaultTiming() Timing {
	return Timing{
		Debounce: constants.ReaderDebounce,
		Flip:     constants.ReaderFlip,
		Open:     constants.ReaderOpen,
		Close:    constants.ReaderClose,
	}
}

// Validate rejects negative durations and a zero flip. Zero open and close
// delays, and flips too short to split, complete on the next clock tick.
func (t Timing) Validate() error {
	if t.Debounce < 0 || t.Open < 0 || t.Close < 0 {
		return errors.New("reader: timings must not be negative")
	}
	if t.Flip <= 0 {
		return errors.New("reader: flip duration must be positive")
	}
	return nil
}

// leaveHalf is the part of a flip before the index changes.
func (t Timing) leaveHalf() time.Duration {
	return t.Flip / 2
}

// settleHalf is the remainder of the flip after the index changes.
func (t Timing) settleHalf() time.Duration {
	return t.Flip - t.Flip/2
}
