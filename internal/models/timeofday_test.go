package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestTimeOfDayWireRoundTrip(t *testing.T) {
	cases := []struct {
		tod  TimeOfDay
		wire string
	}{
		{TimeOfDay{Hour: 0, Minute: 0}, "0:00"},
		{TimeOfDay{Hour: 9, Minute: 5}, "9:05"},
		{TimeOfDay{Hour: 14, Minute: 30}, "14:30"},
		{TimeOfDay{Hour: 23, Minute: 59}, "23:59"},
	}
	for _, c := range cases {
		if got := c.tod.Wire(); got != c.wire {
			t.Fatalf("Wire(%v) = %q, want %q", c.tod, got, c.wire)
		}
		parsed, err := ParseWire(c.wire)
		if err != nil {
			t.Fatalf("ParseWire(%q) error: %v", c.wire, err)
		}
		if parsed != c.tod {
			t.Fatalf("ParseWire(%q) = %v, want %v", c.wire, parsed, c.tod)
		}
	}
}

func TestParseWireRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "9", "24:00", "12:60", "9:5", "-1:00", "abc"} {
		if _, err := ParseWire(s); err == nil {
			t.Fatalf("ParseWire(%q) accepted, want error", s)
		}
	}
}

func TestParseDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:05 AM", TimeOfDay{Hour: 9, Minute: 5}},
		{"9:05 AM", TimeOfDay{Hour: 9, Minute: 5}},
		{"12:00 AM", TimeOfDay{Hour: 0, Minute: 0}},
		{"12:00 PM", TimeOfDay{Hour: 12, Minute: 0}},
		{"02:30 PM", TimeOfDay{Hour: 14, Minute: 30}},
		{"11:59 PM", TimeOfDay{Hour: 23, Minute: 59}},
	}
	for _, c := range cases {
		got, err := ParseDisplay(c.in)
		if err != nil {
			t.Fatalf("ParseDisplay(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseDisplay(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDisplayRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "14:30", "13:00 PM", "00:30 AM", "9:5 AM", "09:05am", "09:05"} {
		if _, err := ParseDisplay(s); err == nil {
			t.Fatalf("ParseDisplay(%q) accepted, want error", s)
		}
	}
}

func TestDisplayRendering(t *testing.T) {
	cases := []struct {
		tod  TimeOfDay
		want string
	}{
		{TimeOfDay{Hour: 0, Minute: 0}, "12:00 AM"},
		{TimeOfDay{Hour: 12, Minute: 0}, "12:00 PM"},
		{TimeOfDay{Hour: 14, Minute: 30}, "02:30 PM"},
		{TimeOfDay{Hour: 9, Minute: 5}, "09:05 AM"},
	}
	for _, c := range cases {
		if got := c.tod.Display(); got != c.want {
			t.Fatalf("Display(%v) = %q, want %q", c.tod, got, c.want)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	if got := FromMinutes(90); got != (TimeOfDay{Hour: 1, Minute: 30}) {
		t.Fatalf("FromMinutes(90) = %v", got)
	}
	if got := FromMinutes(0); got != (TimeOfDay{}) {
		t.Fatalf("FromMinutes(0) = %v", got)
	}
}

func TestTimeOfDayBSONRoundTrip(t *testing.T) {
	type doc struct {
		At TimeOfDay `bson:"at"`
	}
	in := doc{At: TimeOfDay{Hour: 14, Minute: 30}}
	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal to map error: %v", err)
	}
	if m["at"] != "14:30" {
		t.Fatalf("stored value = %v, want the wire string", m["at"])
	}
	var out doc
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.At != in.At {
		t.Fatalf("round trip = %v, want %v", out.At, in.At)
	}
}

func TestTimeOfDayBSONEmptyValue(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"at": ""})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out struct {
		At TimeOfDay `bson:"at"`
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.At != (TimeOfDay{}) {
		t.Fatalf("empty value decoded to %v, want midnight", out.At)
	}
}
