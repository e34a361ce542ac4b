package models

import "time"

type Driver struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CompanyID   string    `bson:"companyId" json:"companyId"`
	AddressID   string    `bson:"addressId,omitempty" json:"addressId"`
	Name        string    `bson:"name" json:"name"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber"`
	Email       string    `bson:"email" json:"email"`
	Gender      string    `bson:"gender" json:"gender"`
	DateOfBirth string    `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	LicenseNo   string    `bson:"licenseNo,omitempty" json:"licenseNo"`
	Bio         string    `bson:"bio,omitempty" json:"bio"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// AgeAt derives the driver's age from a YYYY-MM-DD date of birth, counting
// down by one if the birthday has not yet occurred this year. Returns 0 for
// an unparseable date.
func AgeAt(dateOfBirth string, now time.Time) int {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
