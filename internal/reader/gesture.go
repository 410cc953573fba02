// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"math"

	"github.com/taibuivan/revenuegear/internal/platform/constants"
)

// Point is a gesture coordinate in device-independent pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Swipe is the navigation a gesture resolves to.
type Swipe uint8

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrev
)

func (s Swipe) String() string {
	switch s {
	case SwipeNext:
		return "next"
	case SwipePrev:
		return "prev"
	default:
		return "none"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Swipe) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify resolves a gesture from start to end.
//
// Only a horizontal-dominant movement longer than [constants.SwipeThreshold]
// counts: right is previous, left is next.
func Classify(start, end Point) Swipe {
	dx := end.X - start.X
	dy := end.Y - start.Y

	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= constants.SwipeThreshold {
		return SwipeNone
	}
	if dx > 0 {
		return SwipePrev
	}
	return SwipeNext
}
