package services

import (
	"context"
	"testing"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
)

func TestSaveHoursReplacesWholeSet(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewScheduleSection(deps, "c1")
	ctx := context.Background()

	first := []WorkingDayInput{
		{DayOfWeek: "Monday", StartTime: "08:00 AM", EndTime: "05:00 PM"},
		{DayOfWeek: "Tuesday", StartTime: "08:00 AM", EndTime: "05:00 PM"},
	}
	if err := s.SaveHours(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := []WorkingDayInput{
		{DayOfWeek: "Tuesday", StartTime: "09:00 AM", EndTime: "03:00 PM"},
	}
	if err := s.SaveHours(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	hours, err := s.Hours(ctx)
	if err != nil {
		t.Fatalf("hours: %v", err)
	}
	if len(hours) != 1 {
		t.Fatalf("got %d records after replace, want 1: %+v", len(hours), hours)
	}
	if hours[0].DayOfWeek != "Tuesday" {
		t.Fatalf("day = %q", hours[0].DayOfWeek)
	}
	if hours[0].StartTime != (models.TimeOfDay{Hour: 9}) || hours[0].EndTime != (models.TimeOfDay{Hour: 15}) {
		t.Fatalf("times = %v..%v", hours[0].StartTime, hours[0].EndTime)
	}
}

func TestSaveHoursValidation(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewScheduleSection(deps, "c1")
	ctx := context.Background()

	cases := [][]WorkingDayInput{
		{{DayOfWeek: "Funday", StartTime: "08:00 AM", EndTime: "05:00 PM"}},
		{
			{DayOfWeek: "Monday", StartTime: "08:00 AM", EndTime: "05:00 PM"},
			{DayOfWeek: "Monday", StartTime: "09:00 AM", EndTime: "06:00 PM"},
		},
		{{DayOfWeek: "Monday", StartTime: "17:00", EndTime: "05:00 PM"}},
		{{DayOfWeek: "Monday", StartTime: "05:00 PM", EndTime: "08:00 AM"}},
	}
	for i, days := range cases {
		if err := s.SaveHours(ctx, days); !domain.IsValidation(err) {
			t.Fatalf("case %d: err = %v, want validation error", i, err)
		}
	}
	// A failed save must not touch stored hours.
	hours, err := s.Hours(ctx)
	if err != nil {
		t.Fatalf("hours: %v", err)
	}
	if len(hours) != 0 {
		t.Fatalf("hours = %+v", hours)
	}
}

func TestSaveHoursEmptySetClosesEveryDay(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewScheduleSection(deps, "c1")
	ctx := context.Background()

	if err := s.SaveHours(ctx, []WorkingDayInput{{DayOfWeek: "Monday", StartTime: "08:00 AM", EndTime: "05:00 PM"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveHours(ctx, nil); err != nil {
		t.Fatalf("empty save: %v", err)
	}
	hours, _ := s.Hours(ctx)
	if len(hours) != 0 {
		t.Fatalf("hours = %+v, want none", hours)
	}
}

func TestTimeOffLifecycle(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewScheduleSection(deps, "c1")
	ctx := context.Background()

	id, err := s.AddTimeOff(ctx, TimeOffInput{
		Title:     "Friday prayer",
		Frequency: models.TimeOffWeekly,
		DayOfWeek: "Friday",
		StartTime: "11:30 AM",
		EndTime:   "01:30 PM",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	offs, err := s.TimeOff(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(offs) != 1 || offs[0].ID != id {
		t.Fatalf("offs = %+v", offs)
	}

	if err := s.UpdateTimeOff(ctx, id, TimeOffInput{
		Title:       "Eid holiday",
		Frequency:   models.TimeOffOnce,
		SpecificDay: "2030-03-20",
		StartTime:   "08:00 AM",
		EndTime:     "11:00 PM",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	offs, _ = s.TimeOff(ctx)
	if offs[0].Title != "Eid holiday" || offs[0].SpecificDay != "2030-03-20" {
		t.Fatalf("updated off = %+v", offs[0])
	}

	if err := s.DeleteTimeOff(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	offs, _ = s.TimeOff(ctx)
	if len(offs) != 0 {
		t.Fatalf("offs after delete = %+v", offs)
	}
	if err := s.DeleteTimeOff(ctx, id); !domain.IsNotFound(err) {
		t.Fatalf("second delete: err = %v", err)
	}
}

func TestTimeOffValidation(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewScheduleSection(deps, "c1")
	ctx := context.Background()

	cases := []TimeOffInput{
		{Frequency: models.TimeOffDaily, StartTime: "08:00 AM", EndTime: "09:00 AM"},                          // missing title
		{Title: "x", Frequency: "monthly", StartTime: "08:00 AM", EndTime: "09:00 AM"},                        // bad frequency
		{Title: "x", Frequency: models.TimeOffWeekly, StartTime: "08:00 AM", EndTime: "09:00 AM"},             // weekly without day
		{Title: "x", Frequency: models.TimeOffOnce, StartTime: "08:00 AM", EndTime: "09:00 AM"},               // once without date
		{Title: "x", Frequency: models.TimeOffDaily, StartTime: "8am", EndTime: "09:00 AM"},                   // bad time
		{Title: "x", Frequency: models.TimeOffOnce, SpecificDay: "2030-01-01", StartTime: "08:00 AM"},         // missing end
	}
	for i, in := range cases {
		if _, err := s.AddTimeOff(ctx, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: err = %v, want validation error", i, err)
		}
	}
}
