package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TimeOfDay is the {hour, minute} value used for departure/arrival and
// working-hours times. Storage format is "H:MM" (24h, hour not zero-padded);
// the edit UI speaks "HH:MM AM/PM". Only the wire string is ever persisted.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

var displayRe = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)

// Wire renders the storage string, e.g. "9:05" or "14:30".
func (t TimeOfDay) Wire() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// Display renders the 12-hour UI string, e.g. "02:30 PM".
func (t TimeOfDay) Display() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute, period)
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// FromMinutes decomposes a minute count into hour/minute components.
func FromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// ParseWire parses the "H:MM" storage string. Out-of-range components are
// rejected, not clamped.
func ParseWire(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// ParseDisplay parses the strict "HH:MM AM|PM" form used by free-text time
// inputs.
func ParseDisplay(s string) (TimeOfDay, error) {
	m := displayRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM AM/PM", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if m[3] == "PM" && h != 12 {
		h += 12
	}
	if m[3] == "AM" && h == 12 {
		h = 0
	}
	return TimeOfDay{Hour: h, Minute: min}, nil
}

// MarshalBSONValue stores the wire string.
func (t TimeOfDay) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.Wire())
}

// UnmarshalBSONValue decodes the wire string; an empty or absent value
// decodes to midnight rather than failing the whole document.
func (t *TimeOfDay) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(bt, data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TimeOfDay{}
		return nil
	}
	parsed, err := ParseWire(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
