package session

import (
	"time"
)

// BurnRate returns the block cost per hour, measured between its first and
// last entry in whole minutes. It is undefined for idle blocks and for
// blocks whose entries span less than one minute.
func BurnRate(b Block) (float64, bool) {
	first, ok := FirstEntryTime(b)
	if !ok {
		return 0, false
	}
	last, _ := LastEntryTime(b)

	minutes := int64(last.Sub(first) / time.Minute)
	if minutes <= 0 {
		return 0, false
	}
	return b.Cost() / float64(minutes) * 60, true
}

// RemainingTime is the time left until a block's window closes.
type RemainingTime struct {
	d time.Duration
}

// Remaining returns the time from now until the end of b.
func Remaining(b Block, now time.Time) RemainingTime {
	return RemainingTime{d: b.EndTime().Sub(now)}
}

// Duration returns the remaining time clamped at zero.
func (r RemainingTime) Duration() time.Duration {
	if r.d < 0 {
		return 0
	}
	return r.d
}

// Minutes returns the remaining whole minutes, clamped at zero.
func (r RemainingTime) Minutes() int64 {
	return int64(r.Duration() / time.Minute)
}
