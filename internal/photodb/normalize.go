package photodb

import (
	"database/sql"
	"math"
	"time"
)

// appleEpochOffset converts store timestamps (seconds since 2001-01-01
// 00:00:00 UTC) to Unix seconds.
const appleEpochOffset = 978307200

// Unix-second bounds accepted by timeFromAppleEpoch; values outside the
// years 1..9999 normalize to unknown rather than wrapping.
const (
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799
)

// timeFromAppleEpoch converts a store-native timestamp to a wall-clock time.
// NULL, non-finite, and out-of-range inputs all yield nil, never an error.
func timeFromAppleEpoch(value sql.NullFloat64) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	unix := v + appleEpochOffset
	if unix < minUnixSeconds || unix > maxUnixSeconds {
		return nil
	}
	sec := math.Floor(unix)
	nsec := int64(math.Round((unix - sec) * 1e9))
	t := time.Unix(int64(sec), nsec)
	return &t
}

// locationFrom validates a latitude/longitude pair. The store writes 0/0 or
// an out-of-bounds sentinel when no position is set, so a pair is present
// only when both values are non-NULL, finite, not simultaneously zero, and
// inside geographic bounds.
func locationFrom(lat, lon sql.NullFloat64) *Location {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	la, lo := lat.Float64, lon.Float64
	if math.IsNaN(la) || math.IsInf(la, 0) || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return nil
	}
	if la == 0 && lo == 0 {
		return nil
	}
	if math.Abs(la) > 90 || math.Abs(lo) > 180 {
		return nil
	}
	return &Location{Latitude: la, Longitude: lo}
}
