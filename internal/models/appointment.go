package models

import "time"

// Appointment statuses. Transitions are one-way: pending may become
// approved or rejected, nothing moves after that.
const (
	AppointmentPending  = "pending"
	AppointmentApproved = "approved"
	AppointmentRejected = "rejected"
)

// Appointment carries no companyId of its own; it is scoped to a company
// through its trip.
type Appointment struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	TripID            string    `bson:"tripId" json:"tripId"`
	PassengerID       string    `bson:"passengerId" json:"passengerId"`
	PaymentID         string    `bson:"paymentId,omitempty" json:"paymentId"`
	SeatNumber        string    `bson:"seatNumber" json:"seatNumber"`
	AppointmentStatus string    `bson:"appointmentStatus" json:"appointmentStatus"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
