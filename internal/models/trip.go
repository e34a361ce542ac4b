package models

import "time"

type Trip struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	CompanyID     string    `bson:"companyId" json:"companyId"`
	VehicleID     string    `bson:"vehicleId,omitempty" json:"vehicleId"`
	FromCity      string    `bson:"fromCity" json:"fromCity"`
	ToCity        string    `bson:"toCity" json:"toCity"`
	Date          string    `bson:"date" json:"date"` // YYYY-MM-DD
	DepartureTime TimeOfDay `bson:"departureTime" json:"departureTime"`
	ArrivalTime   TimeOfDay `bson:"arrivalTime" json:"arrivalTime"`
	WaitingTime   TimeOfDay `bson:"waitingTime" json:"waitingTime"`
	RouteType     string    `bson:"routeType,omitempty" json:"routeType"`
	Price         float64   `bson:"price" json:"price"`
	Currency      string    `bson:"currency" json:"currency"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
