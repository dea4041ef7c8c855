package dateutil

import "testing"

func TestParseDatetimeDateOnly(t *testing.T) {
	epoch, ok := ParseDatetime("2024-01-02")
	if !ok {
		t.Fatal("expected a plain date to parse")
	}
	if got := FormatISOUTC(epoch); got != "2024-01-02T00:00:00" {
		t.Errorf("expected 2024-01-02T00:00:00, got %s", got)
	}
}

func TestParseDatetimeYearOnly(t *testing.T) {
	epoch, ok := ParseDatetime("2024")
	if !ok {
		t.Fatal("expected a bare year to parse")
	}
	if got := FormatISOUTC(epoch); got != "2024-01-01T00:00:00" {
		t.Errorf("expected 2024-01-01T00:00:00, got %s", got)
	}
}

func TestParseDatetimeWithTimeAndSpaceSeparator(t *testing.T) {
	epoch, ok := ParseDatetime("2024-01-02 03:04:05")
	if !ok {
		t.Fatal("expected a space-separated datetime to parse")
	}
	if got := FormatISOUTC(epoch); got != "2024-01-02T03:04:05" {
		t.Errorf("expected 2024-01-02T03:04:05, got %s", got)
	}
}

func TestParseDatetimeWithUTCOffset(t *testing.T) {
	epoch, ok := ParseDatetime("2024-01-02T03:00:00+02:00")
	if !ok {
		t.Fatal("expected an offset datetime to parse")
	}
	// +02:00 means local time is 2 hours ahead of UTC, so the UTC instant
	// is 01:00.
	if got := FormatISOUTC(epoch); got != "2024-01-02T01:00:00" {
		t.Errorf("expected the offset to shift back to UTC, got %s", got)
	}
}

func TestParseDatetimeWithZSuffix(t *testing.T) {
	epoch, ok := ParseDatetime("2024-01-02T03:00:00Z")
	if !ok {
		t.Fatal("expected a Z-suffixed datetime to parse")
	}
	if got := FormatISOUTC(epoch); got != "2024-01-02T03:00:00" {
		t.Errorf("expected Z to mean UTC with no shift, got %s", got)
	}
}

func TestParseDatetimeMonthDayYearForm(t *testing.T) {
	epoch, ok := ParseDatetime("01-02-2024")
	if !ok {
		t.Fatal("expected the MM-DD-YYYY mirror form to parse")
	}
	if got := FormatISOUTC(epoch); got != "2024-01-02T00:00:00" {
		t.Errorf("expected 2024-01-02T00:00:00, got %s", got)
	}
}

func TestParseDatetimeInvalid(t *testing.T) {
	if _, ok := ParseDatetime("not a date"); ok {
		t.Error("expected an unparseable string to fail")
	}
	if _, ok := ParseDatetime(""); ok {
		t.Error("expected an empty string to fail")
	}
}

func TestParseIntervalComplexForm(t *testing.T) {
	iv, err := ParseInterval("1 year 2 months 3 days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Years != 1 || iv.Months != 2 || iv.Days != 3 {
		t.Errorf("unexpected interval: %+v", iv)
	}
}

func TestParseIntervalISO8601Form(t *testing.T) {
	iv, err := ParseInterval("P1Y2M3DT4H5M6S")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Years != 1 || iv.Months != 2 || iv.Days != 3 || iv.Hours != 4 || iv.Minutes != 5 || iv.Seconds != 6 {
		t.Errorf("unexpected interval: %+v", iv)
	}
}

func TestParseIntervalISO8601Weeks(t *testing.T) {
	iv, err := ParseInterval("P2W")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Days != 14 {
		t.Errorf("expected 2 weeks to become 14 days, got %d", iv.Days)
	}
}

func TestParseIntervalISO8601Malformed(t *testing.T) {
	if _, err := ParseInterval("PXY"); err == nil {
		t.Error("expected an error for a malformed ISO-8601 interval")
	}
}

func TestAddToEpochMonthOverflow(t *testing.T) {
	epoch, _ := ParseDatetime("2024-01-31")
	iv := Interval{Months: 1}
	got := FormatISOUTC(iv.AddToEpoch(epoch, false))
	if got != "2024-03-02T00:00:00" {
		t.Errorf("expected Go's AddDate month-overflow semantics (Jan 31 + 1 month), got %s", got)
	}
}

func TestAddToEpochNegate(t *testing.T) {
	epoch, _ := ParseDatetime("2024-01-02")
	iv := Interval{Days: 1}
	got := FormatISOUTC(iv.AddToEpoch(epoch, true))
	if got != "2024-01-01T00:00:00" {
		t.Errorf("expected negate=true to subtract the interval, got %s", got)
	}
}
