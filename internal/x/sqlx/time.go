package sqlx

import "time"

// MarshalTime marshals a time into an integer number of nanoseconds since the
// Unix epoch.
//
// The zero time is marshaled as 0 so that it sorts before all other times.
func MarshalTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixNano()
}

// UnmarshalTime unmarshals a time produced by MarshalTime().
func UnmarshalTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}

	return time.Unix(0, n)
}
