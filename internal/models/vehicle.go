package models

import "time"

type Vehicle struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	CompanyID    string    `bson:"companyId" json:"companyId"`
	DriverID     string    `bson:"driverId,omitempty" json:"driverId"`
	AddressID    string    `bson:"addressId,omitempty" json:"addressId"`
	VehicleNo    string    `bson:"vehicleNo" json:"vehicleNo"`
	VehicleType  string    `bson:"vehicleType" json:"vehicleType"`
	CountOfSeats int       `bson:"countOfSeats" json:"countOfSeats"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
