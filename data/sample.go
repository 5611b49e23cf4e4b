// Package data bundles a static sample dataset so catalog and developer
// reads can degrade gracefully when the document store is unreachable. The
// storefront stays browsable; nothing here is ever written back.
package data

import "marketplace-backend/models"

// SampleServices mirrors the hand-picked featured listings of the storefront.
var SampleServices = []models.Service{
	{
		ID:                "svc-1",
		Title:             "Landing Page Kit",
		Category:          "Web Development",
		Description:       "A conversion-focused landing page template with responsive sections and A/B-ready variants.",
		Price:             49.99,
		ImageURL:          "https://images.example.com/services/landing-page-kit.jpg",
		DeveloperID:       "dev-1",
		DeveloperName:     "Elena Vasquez",
		DeveloperVerified: true,
		Rating:            4.8,
	},
	{
		ID:                "svc-2",
		Title:             "E-Commerce Starter API",
		Category:          "Backend",
		Description:       "Production-ready REST API scaffold with auth, catalog and order endpoints.",
		Price:             129.00,
		ImageURL:          "https://images.example.com/services/ecommerce-starter-api.jpg",
		DeveloperID:       "dev-2",
		DeveloperName:     "Marcus Chen",
		DeveloperVerified: true,
		Rating:            4.6,
	},
	{
		ID:                "svc-3",
		Title:             "Mobile App UI Pack",
		Category:          "Design",
		Description:       "120+ reusable mobile screens and components, dark mode included.",
		Price:             79.50,
		ImageURL:          "https://images.example.com/services/mobile-ui-pack.jpg",
		DeveloperID:       "dev-1",
		DeveloperName:     "Elena Vasquez",
		DeveloperVerified: true,
		Rating:            4.9,
	},
	{
		ID:                "svc-4",
		Title:             "SEO Audit Toolkit",
		Category:          "Marketing",
		Description:       "Automated crawl reports, keyword gap analysis and actionable fixes.",
		Price:             35.00,
		ImageURL:          "https://images.example.com/services/seo-audit-toolkit.jpg",
		DeveloperID:       "dev-3",
		DeveloperName:     "Priya Raman",
		DeveloperVerified: false,
		Rating:            4.3,
	},
	{
		ID:                "svc-5",
		Title:             "Data Pipeline Blueprint",
		Category:          "Data Engineering",
		Description:       "Batch and streaming ingestion templates with monitoring baked in.",
		Price:             210.00,
		ImageURL:          "https://images.example.com/services/data-pipeline-blueprint.jpg",
		DeveloperID:       "dev-2",
		DeveloperName:     "Marcus Chen",
		DeveloperVerified: true,
		Rating:            4.7,
	},
}

// SampleDevelopers backs the developers list when the profiles collection is
// unreachable.
var SampleDevelopers = []models.Profile{
	{
		ID:        "dev-1",
		FullName:  "Elena Vasquez",
		Bio:       "Full-stack developer focused on conversion-driven storefronts.",
		AvatarURL: "https://images.example.com/avatars/elena.jpg",
		Verified:  true,
	},
	{
		ID:        "dev-2",
		FullName:  "Marcus Chen",
		Bio:       "Backend engineer building commerce APIs and data platforms.",
		AvatarURL: "https://images.example.com/avatars/marcus.jpg",
		Verified:  true,
	},
	{
		ID:        "dev-3",
		FullName:  "Priya Raman",
		Bio:       "Growth engineer specializing in technical SEO tooling.",
		AvatarURL: "https://images.example.com/avatars/priya.jpg",
		Verified:  false,
	},
}

// FindSampleService looks a listing up in the bundled dataset.
func FindSampleService(id string) (*models.Service, bool) {
	for i := range SampleServices {
		if SampleServices[i].ID == id {
			return &SampleServices[i], true
		}
	}
	return nil, false
}
