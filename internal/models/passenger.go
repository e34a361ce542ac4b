package models

import "time"

// Passenger documents are written by the rider-facing app; this console only
// resolves them for display on appointments, reviews and notifications.
type Passenger struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
