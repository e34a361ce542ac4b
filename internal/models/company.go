package models

import "time"

// Company is the authenticated tenant. Its document id doubles as the
// session's user id and scopes nearly every query.
type Company struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Password       string    `bson:"password" json:"-"`
	PhoneNumber    string    `bson:"phoneNumber" json:"phoneNumber"`
	AddressID      string    `bson:"addressId,omitempty" json:"addressId"`
	Rate           float64   `bson:"rate" json:"rate"`
	ReviewCount    int       `bson:"reviewCount" json:"reviewCount"`
	PassengerCount int       `bson:"passengerCount" json:"passengerCount"`
	AuthProvider   string    `bson:"authProvider" json:"authProvider"`
	EmailVerified  bool      `bson:"emailVerified" json:"emailVerified"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	LastLoginAt    time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt"`
}
