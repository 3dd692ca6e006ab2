// Package seed populates an empty database with the default cities, their
// core civic services, the bootstrap accounts and a few illustrative
// reports and audit entries. It never touches tables that already have
// data.
package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/civixa/civixa-backend/internal/config"
	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var cityNames = []string{"Chennai", "Coimbatore", "Madurai"}

type serviceTemplate struct {
	Name   string
	Impact string
}

// coreServices is the shared catalog every city starts with: civic
// utilities, major banks and broadband providers.
var coreServices = []serviceTemplate{
	{Name: "Electricity Supply", Impact: "Residential & Commercial power distribution"},
	{Name: "Government Offices", Impact: "Municipal, district and state offices"},
	{Name: "Water Supply", Impact: "Drinking water & sewage systems"},
	{Name: "Traffic Signals", Impact: "All major junctions and crossroads"},
	{Name: "Roads", Impact: "City roads, highways and flyovers"},

	{Name: "State Bank of India (SBI)", Impact: "Branch & ATM operations"},
	{Name: "HDFC Bank", Impact: "Branch & ATM operations"},
	{Name: "ICICI Bank", Impact: "Branch & ATM operations"},
	{Name: "Axis Bank", Impact: "Branch & ATM operations"},
	{Name: "Punjab National Bank (PNB)", Impact: "Branch & ATM operations"},
	{Name: "Kotak Mahindra Bank", Impact: "Branch & ATM operations"},
	{Name: "Bank of Baroda", Impact: "Branch & ATM operations"},
	{Name: "Canara Bank", Impact: "Branch & ATM operations"},
	{Name: "Union Bank of India", Impact: "Branch & ATM operations"},
	{Name: "IndusInd Bank", Impact: "Branch & ATM operations"},

	{Name: "Internet – BSNL", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – Jio Fiber", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – Airtel", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – ACT Fibernet", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – Hathway", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – SITI Networks", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – Excitel", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – YOU Broadband", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – TATA Play Fiber", Impact: "Broadband & fiber connectivity"},
	{Name: "Internet – Spectra", Impact: "Broadband & fiber connectivity"},
}

// Run seeds cities, services, bootstrap accounts and demo data when their
// tables are empty. Each group is checked independently so a partially
// seeded database is completed rather than duplicated; the demo reports and
// audit entries are only written on a completely fresh database.
func Run(db *gorm.DB, cfg *config.Config) error {
	firstCityID, chennaiServices, fresh, err := seedCities(db)
	if err != nil {
		return err
	}

	mod, err := seedUsers(db, cfg, firstCityID)
	if err != nil {
		return err
	}

	if fresh && mod != nil {
		if err := seedDemoData(db, firstCityID, chennaiServices, mod); err != nil {
			return err
		}
	}
	return nil
}

func seedCities(db *gorm.DB) (uuid.UUID, map[string]uuid.UUID, bool, error) {
	var count int64
	if err := db.Model(&models.Location{}).Count(&count).Error; err != nil {
		return uuid.Nil, nil, false, fmt.Errorf("failed to count locations: %w", err)
	}
	if count > 0 {
		var first models.Location
		if err := db.Order("created_at ASC").First(&first).Error; err != nil {
			return uuid.Nil, nil, false, fmt.Errorf("failed to load first location: %w", err)
		}
		return first.ID, nil, false, nil
	}

	var firstCityID uuid.UUID
	chennaiServices := make(map[string]uuid.UUID, len(coreServices))
	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		for i, name := range cityNames {
			location := models.Location{
				ID:   uuid.New(),
				Name: name,
				Slug: models.LocationSlug(name),
			}
			if err := tx.Create(&location).Error; err != nil {
				return err
			}
			if i == 0 {
				firstCityID = location.ID
			}

			for _, tpl := range coreServices {
				svc := models.Service{
					ID:          uuid.New(),
					LocationID:  location.ID,
					Name:        tpl.Name,
					Status:      models.StatusOperational,
					Impact:      tpl.Impact,
					LastUpdated: now,
				}
				if err := tx.Create(&svc).Error; err != nil {
					return err
				}
				if i == 0 {
					chennaiServices[tpl.Name] = svc.ID
				}
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, nil, false, fmt.Errorf("failed to seed cities: %w", err)
	}

	slog.Info("seeded default cities", "cities", len(cityNames), "services_per_city", len(coreServices))
	return firstCityID, chennaiServices, true, nil
}

func seedUsers(db *gorm.DB, cfg *config.Config, firstCityID uuid.UUID) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	modHash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedModPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash moderator password: %w", err)
	}

	admin, moderator := bootstrapUsers(string(adminHash), string(modHash), firstCityID)
	for _, user := range []*models.User{admin, moderator} {
		if err := db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
	}

	slog.Info("seeded bootstrap accounts", "admin", admin.Email, "moderator", moderator.Email)
	return moderator, nil
}

// bootstrapUsers builds the two default accounts. The admin's seed password
// is a placeholder, so that account must change it on first login; the
// moderator's is treated as a real credential handed over out of band.
func bootstrapUsers(adminHash, modHash string, firstCityID uuid.UUID) (*models.User, *models.User) {
	admin := &models.User{
		ID:                 uuid.New(),
		Name:               "System Admin",
		Email:              "admin@civixa.local",
		Password:           adminHash,
		IsAdmin:            true,
		MustChangePassword: true,
	}
	moderator := &models.User{
		ID:                 uuid.New(),
		Name:               "Chennai Mod",
		Email:              "mod@civixa.local",
		Password:           modHash,
		IsModerator:        true,
		AssignedLocationID: &firstCityID,
	}
	return admin, moderator
}

func seedDemoData(db *gorm.DB, locationID uuid.UUID, serviceIDs map[string]uuid.UUID, moderator *models.User) error {
	now := time.Now()
	reports := demoReports(now, locationID, serviceIDs)
	logs := demoAuditLogs(now, locationID, moderator)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range reports {
			if err := tx.Create(&reports[i]).Error; err != nil {
				return err
			}
		}
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	slog.Info("seeded demo data", "reports", len(reports), "audit_entries", len(logs))
	return nil
}

// demoReports mirrors the dashboard's first-run content: two pending
// reports waiting in the moderation queue and one already-approved outage.
func demoReports(now time.Time, locationID uuid.UUID, serviceIDs map[string]uuid.UUID) []models.Report {
	return []models.Report{
		{
			ID:           uuid.New(),
			LocationID:   locationID,
			ServiceID:    serviceIDs["Electricity Supply"],
			Area:         "Adyar",
			Description:  "Power has been flickering for the past 2 hours. Several appliances damaged.",
			ContactEmail: "mod@civixa.local",
			Status:       models.ReportPending,
			CreatedAt:    now.Add(-15 * time.Minute),
		},
		{
			ID:           uuid.New(),
			LocationID:   locationID,
			ServiceID:    serviceIDs["Roads"],
			Area:         "T. Nagar",
			Description:  "Large pothole on main road causing accidents. No signage or barriers.",
			ContactEmail: "mod@civixa.local",
			Status:       models.ReportPending,
			CreatedAt:    now.Add(-45 * time.Minute),
		},
		{
			ID:           uuid.New(),
			LocationID:   locationID,
			ServiceID:    serviceIDs["Electricity Supply"],
			Area:         "Velachery",
			Description:  "Complete power outage since morning. No response from local TNEB office.",
			ContactEmail: "resident@example.com",
			Status:       models.ReportApproved,
			CreatedAt:    now.Add(-25 * time.Minute),
		},
	}
}

func demoAuditLogs(now time.Time, locationID uuid.UUID, moderator *models.User) []models.AuditLog {
	return []models.AuditLog{
		{
			ID:              uuid.New(),
			Action:          "Report approved: Electricity outage in Velachery",
			PerformedBy:     moderator.ID.String(),
			PerformedByName: moderator.Name,
			LocationID:      locationID,
			CreatedAt:       now.Add(-10 * time.Minute),
		},
		{
			ID:              uuid.New(),
			Action:          "Service status updated: Electricity Supply → Warning",
			PerformedBy:     moderator.ID.String(),
			PerformedByName: moderator.Name,
			LocationID:      locationID,
			CreatedAt:       now.Add(-9 * time.Minute),
		},
	}
}
