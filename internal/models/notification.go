package models

import "time"

// Notification is authored by the company and targeted at a passenger.
type Notification struct {
	ID      string    `bson:"_id,omitempty" json:"id"`
	From    string    `bson:"from" json:"from"` // company id
	To      string    `bson:"to" json:"to"`     // passenger id
	Title   string    `bson:"title" json:"title"`
	Content string    `bson:"content" json:"content"`
	IsRead  bool      `bson:"isRead" json:"isRead"`
	SentAt  time.Time `bson:"sentAt" json:"sentAt"`
}
