package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/auth"
	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/session"
	"bus-company-admin-api/internal/store"
)

// ErrEmailNotVerified gates login for companies whose email has not been
// confirmed yet.
var ErrEmailNotVerified = domain.ValidationError{Field: "email", Msg: "email is not verified"}

// CompanyService handles the tenant itself: sign-up, sign-in, the cached
// profile, dashboard stats and the audit trail.
type CompanyService struct {
	deps     Deps
	sessions *session.Store
}

func NewCompanyService(deps Deps, sessions *session.Store) *CompanyService {
	return &CompanyService{deps: deps, sessions: sessions}
}

type RegisterInput struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	PhoneNumber string       `json:"phoneNumber"`
	Address     AddressInput `json:"address"`
}

// Register creates the Company document and its owned address. Email
// verification dispatch belongs to the identity provider; first-party
// sign-ups start verified.
func (s *CompanyService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := required("name", in.Name); err != nil {
		return "", err
	}
	if err := required("email", in.Email); err != nil {
		return "", err
	}
	if len(in.Password) < 6 {
		return "", domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	n, err := s.deps.Store.Count(ctx, store.Companies, bson.M{"email": in.Email})
	if err != nil {
		return "", backendErr("check company email", err)
	}
	if n > 0 {
		return "", domain.ConstraintError{Resource: "company", Msg: "email is already registered"}
	}
	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", backendErr("hash password", err)
	}
	var addressID string
	if !in.Address.empty() {
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return "", backendErr("create company address", err)
		}
	}
	company := models.Company{
		Name:          in.Name,
		Email:         in.Email,
		Password:      hashed,
		PhoneNumber:   in.PhoneNumber,
		AddressID:     addressID,
		AuthProvider:  "password",
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	id, err := s.deps.Store.Add(ctx, store.Companies, company)
	if err != nil {
		return "", backendErr("create company", err)
	}
	s.deps.Activity.Append(id, "create", "company", id)
	return id, nil
}

// Login checks credentials and the verification gate, stamps lastLoginAt
// and fills the session profile cache.
func (s *CompanyService) Login(ctx context.Context, email, password string) (*models.Company, error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := s.deps.Store.Query(ctx, store.Companies, bson.M{"email": email}, &companies); err != nil {
		return nil, backendErr("load company", err)
	}
	if len(companies) == 0 {
		return nil, domain.NotFoundError{Resource: "company"}
	}
	company := companies[0]
	if !auth.CheckPasswordHash(password, company.Password) {
		return nil, domain.ValidationError{Field: "password", Msg: "invalid credentials"}
	}
	if !company.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	now := time.Now()
	if err := s.deps.Store.Update(ctx, store.Companies, company.ID, bson.M{"lastLoginAt": now}); err != nil {
		return nil, backendErr("stamp last login", err)
	}
	company.LastLoginAt = now
	s.sessions.Put(&company)
	return &company, nil
}

// CompanyProfile is the company with its address attached.
type CompanyProfile struct {
	models.Company
	Address *models.Address `json:"address"`
}

// Profile serves from the session cache when warm, restoring it from the
// store otherwise.
func (s *CompanyService) Profile(ctx context.Context, companyID string) (*CompanyProfile, error) {
	company := s.sessions.Get(companyID)
	if company == nil {
		var c models.Company
		found, err := s.deps.Store.Get(ctx, store.Companies, companyID, &c)
		if err != nil {
			return nil, backendErr("load company", err)
		}
		if !found {
			return nil, domain.NotFoundError{Resource: "company"}
		}
		company = &c
		s.sessions.Put(company)
	}
	return &CompanyProfile{
		Company: *company,
		Address: s.deps.Resolver.Address(ctx, company.AddressID),
	}, nil
}

type ProfileInput struct {
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phoneNumber"`
	Address     AddressInput `json:"address"`
}

// UpdateProfile writes through and refreshes the session cache.
func (s *CompanyService) UpdateProfile(ctx context.Context, companyID string, in ProfileInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	var company models.Company
	found, err := s.deps.Store.Get(ctx, store.Companies, companyID, &company)
	if err != nil {
		return backendErr("load company", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "company"}
	}
	addressID := company.AddressID
	if addressID != "" {
		if err := s.deps.Store.Update(ctx, store.Addresses, addressID, in.Address.fields()); err != nil {
			return backendErr("update company address", err)
		}
	} else if !in.Address.empty() {
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return backendErr("create company address", err)
		}
	}
	fields := bson.M{
		"name":        in.Name,
		"phoneNumber": in.PhoneNumber,
		"addressId":   addressID,
	}
	if err := s.deps.Store.Update(ctx, store.Companies, companyID, fields); err != nil {
		return backendErr("update company", err)
	}
	s.deps.Activity.Append(companyID, "update", "company", companyID)
	s.sessions.Invalidate(companyID)
	return nil
}

// SignOut drops the cached profile.
func (s *CompanyService) SignOut(companyID string) {
	s.sessions.Invalidate(companyID)
}

type DashboardStats struct {
	Drivers        int64   `json:"drivers"`
	Buses          int64   `json:"buses"`
	Trips          int64   `json:"trips"`
	Reviews        int64   `json:"reviews"`
	Rate           float64 `json:"rate"`
	ReviewCount    int     `json:"reviewCount"`
	PassengerCount int     `json:"passengerCount"`
}

func (s *CompanyService) Dashboard(ctx context.Context, companyID string) (*DashboardStats, error) {
	profile, err := s.Profile(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		Rate:           profile.Rate,
		ReviewCount:    profile.ReviewCount,
		PassengerCount: profile.PassengerCount,
	}
	scope := bson.M{"companyId": companyID}
	if stats.Drivers, err = s.deps.Store.Count(ctx, store.Drivers, scope); err != nil {
		return nil, backendErr("count drivers", err)
	}
	if stats.Buses, err = s.deps.Store.Count(ctx, store.Vehicles, scope); err != nil {
		return nil, backendErr("count buses", err)
	}
	if stats.Trips, err = s.deps.Store.Count(ctx, store.Trips, scope); err != nil {
		return nil, backendErr("count trips", err)
	}
	if stats.Reviews, err = s.deps.Store.Count(ctx, store.Reviews, scope); err != nil {
		return nil, backendErr("count reviews", err)
	}
	return stats, nil
}

// Activities lists the newest audit records for the company.
func (s *CompanyService) Activities(ctx context.Context, companyID string, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := s.deps.Store.QuerySort(ctx, store.ActivityLogs, bson.M{"companyId": companyID}, "-createdAt", &logs); err != nil {
		return nil, backendErr("load activity", err)
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}
	return logs, nil
}
