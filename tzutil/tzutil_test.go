package tzutil

import "testing"

func TestLocalTimeKnownZone(t *testing.T) {
	// 2024-01-01T00:00:00 UTC.
	const utcEpoch = 1704067200
	local, ok := LocalTime("America/New_York", utcEpoch)
	if !ok {
		t.Fatal("expected a known IANA zone to resolve")
	}
	// New York is UTC-5 in January (standard time, no DST).
	if want := int64(utcEpoch - 5*3600); local != want {
		t.Errorf("expected local epoch %d, got %d", want, local)
	}
}

func TestLocalTimeUTCIsNoOp(t *testing.T) {
	const epoch = 1704067200
	local, ok := LocalTime("UTC", epoch)
	if !ok || local != epoch {
		t.Errorf("expected UTC to be a no-op shift, got (%d, %v)", local, ok)
	}
}

func TestLocalTimeUnknownZone(t *testing.T) {
	if _, ok := LocalTime("Not/AZone", 0); ok {
		t.Error("expected an unresolvable zone name to report ok=false")
	}
}
