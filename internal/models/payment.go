package models

import "time"

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Payment is only ever reached through Appointment.paymentId; there is no
// company-scoped payment query.
type Payment struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentMethod string    `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID string    `bson:"transactionID,omitempty" json:"transactionID"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
