package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcpsquare/marketplace-api/internal/model"
)

// SeedServices returns the sample listings inserted by the seed command.
// Ids are fixed so re-running the command surfaces as a duplicate instead
// of silently doubling the catalog.
func SeedServices() []*model.Service {
	now := time.Now().UTC()
	return []*model.Service{
		{
			ID:          uuid.MustParse("6f1c2a4e-9b3d-4f6a-8c1e-2d5b7a9e0c11"),
			Title:       "Image Recognition",
			Summary:     "Identify objects and scenes from images.",
			Category:    "AI",
			Tags:        []string{"image", "vision", "ai"},
			Pricing:     "Usage based",
			Status:      model.StatusActive,
			ContactInfo: "support@example.com",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("3b8e5d17-42c6-4a9f-b0d3-7e1f6c2a8b22"),
			Title:       "Content Moderation",
			Summary:     "Automated safety checks for text and images.",
			Category:    "Safety",
			Tags:        []string{"moderation", "safety", "ai"},
			Pricing:     "Monthly subscription",
			Status:      model.StatusActive,
			ContactInfo: "safety@example.com",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.MustParse("9d4a7f02-5e8b-4c3d-a6f1-0b2c8e4d7a33"),
			Title:       "Catalog Enrichment",
			Summary:     "Normalize titles, tags, and attributes for listings.",
			Category:    "Data",
			Tags:        []string{"data", "ecommerce", "catalog"},
			Pricing:     "Contact us",
			Status:      model.StatusDraft,
			ContactInfo: "sales@example.com",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
