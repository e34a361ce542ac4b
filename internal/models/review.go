package models

import "time"

type Review struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CompanyID   string    `bson:"companyId" json:"companyId"`
	PassengerID string    `bson:"passengerId" json:"passengerId"`
	TripID      string    `bson:"tripId,omitempty" json:"tripId"`
	Comment     string    `bson:"comment" json:"comment"`
	Rate        int       `bson:"rate" json:"rate"`
	Reply       string    `bson:"reply,omitempty" json:"reply"`
	Replied     bool      `bson:"replied" json:"replied"`
	ReplyDate   time.Time `bson:"replyDate,omitempty" json:"replyDate"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
