package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-date layout used across the ledger
const DayLayout = "2006-01-02"

// Day is a calendar date without time of day or zone.
// It is comparable and safe to use as a map key; the zero Day means "no date".
type Day struct {
	year  int
	month time.Month
	day   int
	// raw holds a stored value that could not be parsed
	raw string
}

// NewDay creates a Day from its parts, normalizing overflow the way time.Date does
func NewDay(year int, month time.Month, day int) Day {
	return dayFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the local calendar date of t in loc
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return dayFromTime(t.In(loc))
}

func dayFromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses a YYYY-MM-DD date. A trailing time component
// ("2024-01-05T10:00:00Z") is dropped so timestamps collapse to their date.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DayLayout) && s[len(DayLayout)] == 'T' {
		s = s[:len(DayLayout)]
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return dayFromTime(t), nil
}

// UnparsedDay wraps a stored value that is not a YYYY-MM-DD date. It behaves
// as the zero Day everywhere except Stored, which returns raw unchanged.
func UnparsedDay(raw string) Day {
	return Day{raw: raw}
}

// MustParseDay is ParseDay for literals; it panics on malformed input
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero Day
func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Stored returns the value to persist: the canonical form, or the original
// text for a Day built by UnparsedDay
func (d Day) Stored() string {
	if d.IsZero() {
		return d.raw
	}
	return d.String()
}

// Time returns midnight UTC of the date
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String returns the canonical YYYY-MM-DD form, or "" for the zero Day
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Display returns the date as DD/MM/YYYY
func (d Day) Display() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.day, d.month, d.year)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other
func (d Day) Compare(other Day) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before other
func (d Day) Before(other Day) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other
func (d Day) After(other Day) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same date
func (d Day) Equal(other Day) bool { return d == other }

// MarshalJSON implements json.Marshaler
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
