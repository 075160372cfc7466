package trace

import "time"

// Time in nanoseconds
type Time int64

func NewTime(t time.Duration) Time { return Time(t.Nanoseconds()) }

// Microseconds converts a trace timestamp in microseconds, as written by
// Chrome, into Time. Fractions below a nanosecond are rounded away, so
// millisecond totals are exact to the nanosecond.
func Microseconds(us float64) Time {
	if us < 0 {
		return Time(us*1000 - 0.5)
	}
	return Time(us*1000 + 0.5)
}

func (t Time) Std() time.Duration {
	return time.Duration(int64(t) * int64(time.Nanosecond))
}

func (t Time) Milliseconds() float64 {
	return float64(t) / float64(time.Millisecond)
}

func (t Time) Min(b Time) Time {
	if t < b {
		return t
	}
	return b
}

func (t Time) Max(b Time) Time {
	if t > b {
		return t
	}
	return b
}
