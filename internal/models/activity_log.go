package models

import "time"

// ActivityLog is the audit record appended after every mutation.
type ActivityLog struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	CompanyID  string    `bson:"companyId" json:"companyId"`
	Action     string    `bson:"action" json:"action"` // create, update, delete, approve, ...
	EntityType string    `bson:"entityType" json:"entityType"`
	EntityID   string    `bson:"entityId" json:"entityId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
