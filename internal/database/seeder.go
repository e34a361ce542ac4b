package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bus-company-admin-api/internal/auth"
	"bus-company-admin-api/internal/models"
)

const demoEmail = "demo@buscompany.example"

// SeedDemoCompany creates a demo tenant for local development. Re-running is
// harmless; an existing demo account is left untouched.
func SeedDemoCompany(db *mongo.Database) error {
	companies := db.Collection("companies")

	count, err := companies.CountDocuments(context.Background(), bson.M{"email": demoEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Demo company already exists. Seeding skipped.")
		return nil
	}

	logrus.Info("Demo company not found. Seeding...")
	hashedPassword, err := auth.HashPassword("demopassword")
	if err != nil {
		return err
	}

	demo := models.Company{
		ID:            uuid.NewString(),
		Name:          "Demo Bus Company",
		Email:         demoEmail,
		Password:      hashedPassword,
		PhoneNumber:   "781234567",
		AuthProvider:  "password",
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	if _, err := companies.InsertOne(context.Background(), demo); err != nil {
		return err
	}

	logrus.Info("Demo company seeded successfully.")
	return nil
}
