package services_test

import (
	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func validProfile() models.UserProfile {
	return models.UserProfile{
		Name:            "Ana Silva",
		Age:             24,
		University:      "Universidade de Lisboa",
		Major:           "Computer Science",
		Location:        "Lisbon",
		CurrentJob:      "Junior Developer",
		PrimaryIndustry: "Technology & Engineering",
		CurrentSalary:   "30000 EUR",
		KeySkills:       "Go, SQL",
		RetireAge:       "45",
	}
}
