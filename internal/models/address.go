package models

// Address is owned by the referencing Company, Driver or Vehicle and is
// deleted alongside its parent.
type Address struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	StreetName   string  `bson:"streetName" json:"streetName"`
	StreetNumber string  `bson:"streetNumber,omitempty" json:"streetNumber"`
	City         string  `bson:"city" json:"city"`
	District     string  `bson:"district,omitempty" json:"district"`
	Country      string  `bson:"country" json:"country"`
	NextTo       string  `bson:"nextTo,omitempty" json:"nextTo"`
	Latitude     float64 `bson:"latitude,omitempty" json:"latitude"`
	Longitude    float64 `bson:"longitude,omitempty" json:"longitude"`
}
