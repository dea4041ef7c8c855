// Package tzutil backs CONVERT_TZ's named-timezone conversion. Go's
// tzdata-backed time.LoadLocation is the idiomatic choice here — see
// DESIGN.md for why this is one of the few components built directly on
// the standard library rather than a third-party timezone database.
package tzutil

import "time"

// LocalTime implements local_time(tz_name, utc_epoch) -> local_epoch, or
// a failure signal. "Local epoch" here means the Unix epoch value that,
// when formatted as a naive UTC wall-clock time, displays the named
// zone's local wall clock — consistent with CONVERT_TZ's contract of
// shifting the stored UTC epoch by the zone's offset.
func LocalTime(tzName string, utcEpoch int64) (localEpoch int64, ok bool) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return 0, false
	}
	t := time.Unix(utcEpoch, 0).UTC().In(loc)
	_, offset := t.Zone()
	return utcEpoch + int64(offset), true
}
