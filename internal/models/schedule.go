package models

// WorkingHours holds one record per open weekday; closed days are simply
// absent. Saves replace the company's whole set.
type WorkingHours struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CompanyID string    `bson:"companyId" json:"companyId"`
	DayOfWeek string    `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime TimeOfDay `bson:"startTime" json:"startTime"`
	EndTime   TimeOfDay `bson:"endTime" json:"endTime"`
}

const (
	TimeOffOnce   = "once"
	TimeOffDaily  = "daily"
	TimeOffWeekly = "weekly"
)

type TimeOff struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CompanyID   string    `bson:"companyId" json:"companyId"`
	Title       string    `bson:"title" json:"title"`
	Frequency   string    `bson:"frequency" json:"frequency"`
	DayOfWeek   string    `bson:"dayOfWeek,omitempty" json:"dayOfWeek"`
	SpecificDay string    `bson:"specificDay,omitempty" json:"specificDay"` // YYYY-MM-DD
	StartTime   TimeOfDay `bson:"startTime" json:"startTime"`
	EndTime     TimeOfDay `bson:"endTime" json:"endTime"`
}
