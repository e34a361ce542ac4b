package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/section"
	"bus-company-admin-api/internal/store"
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// WorkingDayInput is one open weekday in the schedule form; times arrive in
// the edit-UI format.
type WorkingDayInput struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type TimeOffInput struct {
	Title       string `json:"title"`
	Frequency   string `json:"frequency"`
	DayOfWeek   string `json:"dayOfWeek"`
	SpecificDay string `json:"specificDay"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ScheduleSection manages working hours and time off. Working-hours saves
// are a full replace: every existing day record is deleted and the new set
// inserted in one batch.
type ScheduleSection struct {
	deps      Deps
	companyID string
	state     *section.Section
}

func NewScheduleSection(deps Deps, companyID string) *ScheduleSection {
	return &ScheduleSection{deps: deps, companyID: companyID, state: section.New()}
}

func (s *ScheduleSection) State() section.State { return s.state.State() }

func (s *ScheduleSection) Hours(ctx context.Context) ([]models.WorkingHours, error) {
	var hours []models.WorkingHours
	if err := s.deps.Store.Query(ctx, store.WorkingHours, bson.M{"companyId": s.companyID}, &hours); err != nil {
		return nil, backendErr("load working hours", err)
	}
	if hours == nil {
		hours = []models.WorkingHours{}
	}
	return hours, nil
}

// SaveHours validates every day entry, then replaces the company's whole
// working-hours set atomically. Closed days are simply not submitted.
func (s *ScheduleSection) SaveHours(ctx context.Context, days []WorkingDayInput) error {
	type parsedDay struct {
		day        string
		start, end models.TimeOfDay
	}
	parsed := make([]parsedDay, 0, len(days))
	seen := map[string]bool{}
	for _, d := range days {
		if !weekdays[d.DayOfWeek] {
			return domain.ValidationError{Field: "dayOfWeek", Msg: "unknown weekday " + d.DayOfWeek}
		}
		if seen[d.DayOfWeek] {
			return domain.ValidationError{Field: "dayOfWeek", Msg: d.DayOfWeek + " appears twice"}
		}
		seen[d.DayOfWeek] = true
		start, err := models.ParseDisplay(d.StartTime)
		if err != nil {
			return domain.ValidationError{Field: "startTime", Msg: err.Error()}
		}
		end, err := models.ParseDisplay(d.EndTime)
		if err != nil {
			return domain.ValidationError{Field: "endTime", Msg: err.Error()}
		}
		if end.Minutes() <= start.Minutes() {
			return domain.ValidationError{Field: "endTime", Msg: "must be after startTime"}
		}
		parsed = append(parsed, parsedDay{day: d.DayOfWeek, start: start, end: end})
	}

	var existing []models.WorkingHours
	if err := s.deps.Store.Query(ctx, store.WorkingHours, bson.M{"companyId": s.companyID}, &existing); err != nil {
		return backendErr("load working hours", err)
	}
	ops := make([]store.WriteOp, 0, len(existing)+len(parsed))
	for _, h := range existing {
		ops = append(ops, store.WriteOp{Kind: store.OpDelete, Collection: store.WorkingHours, ID: h.ID})
	}
	for _, p := range parsed {
		ops = append(ops, store.WriteOp{
			Kind:       store.OpAdd,
			Collection: store.WorkingHours,
			Doc: models.WorkingHours{
				CompanyID: s.companyID,
				DayOfWeek: p.day,
				StartTime: p.start,
				EndTime:   p.end,
			},
		})
	}
	s.state.BeginMutate()
	err := s.deps.Store.BatchWrite(ctx, ops)
	if err != nil {
		err = backendErr("save working hours", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "workingHours", s.companyID)
	return nil
}

func (s *ScheduleSection) TimeOff(ctx context.Context) ([]models.TimeOff, error) {
	var offs []models.TimeOff
	if err := s.deps.Store.Query(ctx, store.TimeOff, bson.M{"companyId": s.companyID}, &offs); err != nil {
		return nil, backendErr("load time off", err)
	}
	if offs == nil {
		offs = []models.TimeOff{}
	}
	return offs, nil
}

func (in TimeOffInput) validate() (start, end models.TimeOfDay, err error) {
	if err = required("title", in.Title); err != nil {
		return
	}
	switch in.Frequency {
	case models.TimeOffOnce, models.TimeOffDaily, models.TimeOffWeekly:
	default:
		err = domain.ValidationError{Field: "frequency", Msg: "must be once, daily or weekly"}
		return
	}
	if in.Frequency == models.TimeOffWeekly && !weekdays[in.DayOfWeek] {
		err = domain.ValidationError{Field: "dayOfWeek", Msg: "required for weekly time off"}
		return
	}
	if in.Frequency == models.TimeOffOnce {
		if err = required("specificDay", in.SpecificDay); err != nil {
			return
		}
	}
	if start, err = models.ParseDisplay(in.StartTime); err != nil {
		err = domain.ValidationError{Field: "startTime", Msg: err.Error()}
		return
	}
	if end, err = models.ParseDisplay(in.EndTime); err != nil {
		err = domain.ValidationError{Field: "endTime", Msg: err.Error()}
		return
	}
	return
}

func (s *ScheduleSection) AddTimeOff(ctx context.Context, in TimeOffInput) (string, error) {
	start, end, err := in.validate()
	if err != nil {
		return "", err
	}
	off := models.TimeOff{
		CompanyID:   s.companyID,
		Title:       in.Title,
		Frequency:   in.Frequency,
		DayOfWeek:   in.DayOfWeek,
		SpecificDay: in.SpecificDay,
		StartTime:   start,
		EndTime:     end,
	}
	s.state.BeginMutate()
	id, err := s.deps.Store.Add(ctx, store.TimeOff, off)
	if err != nil {
		err = backendErr("create time off", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return "", err
	}
	s.deps.Activity.Append(s.companyID, "create", "timeOff", id)
	return id, nil
}

func (s *ScheduleSection) UpdateTimeOff(ctx context.Context, id string, in TimeOffInput) error {
	start, end, err := in.validate()
	if err != nil {
		return err
	}
	var existing models.TimeOff
	found, err := s.deps.Store.Get(ctx, store.TimeOff, id, &existing)
	if err != nil {
		return backendErr("load time off", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "time off"}
	}
	fields := bson.M{
		"title":       in.Title,
		"frequency":   in.Frequency,
		"dayOfWeek":   in.DayOfWeek,
		"specificDay": in.SpecificDay,
		"startTime":   start,
		"endTime":     end,
	}
	s.state.BeginMutate()
	err = s.deps.Store.Update(ctx, store.TimeOff, id, fields)
	if err != nil {
		err = backendErr("update time off", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "timeOff", id)
	return nil
}

func (s *ScheduleSection) DeleteTimeOff(ctx context.Context, id string) error {
	var existing models.TimeOff
	found, err := s.deps.Store.Get(ctx, store.TimeOff, id, &existing)
	if err != nil {
		return backendErr("load time off", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "time off"}
	}
	s.state.BeginMutate()
	err = s.deps.Store.Delete(ctx, store.TimeOff, id)
	if err != nil {
		err = backendErr("delete time off", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "delete", "timeOff", id)
	return nil
}
