package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"marketplace-backend/data"
	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
	"marketplace-backend/repository"
)

// DeveloperList is a page of developer profiles. Degraded marks a response
// built from the bundled dataset.
type DeveloperList struct {
	Developers []models.Profile `json:"developers"`
	Meta       PageMeta         `json:"meta"`
	Degraded   bool             `json:"degraded"`
}

// DeveloperDetail is one developer's public page: profile, their listings and
// the review summary.
type DeveloperDetail struct {
	Profile       models.Profile   `json:"profile"`
	Services      []models.Service `json:"services"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
}

type DeveloperService struct {
	profiles repository.ProfileRepository
	catalog  repository.ServiceRepository
	reviews  repository.ReviewRepository
	logger   *zap.Logger
}

func NewDeveloperService(profiles repository.ProfileRepository, catalog repository.ServiceRepository, reviews repository.ReviewRepository, logger *zap.Logger) *DeveloperService {
	return &DeveloperService{profiles: profiles, catalog: catalog, reviews: reviews, logger: logger}
}

// List returns a page of developer profiles, degrading to the bundled
// dataset when the store is unreachable.
func (s *DeveloperService) List(ctx context.Context, page, perPage int) (*DeveloperList, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	profiles, total, err := s.profiles.Find(ctx, page, perPage)
	if err != nil {
		s.logger.Warn("Profiles read failed, serving sample dataset", zap.Error(err))
		return &DeveloperList{
			Developers: pageSlice(data.SampleDevelopers, page, perPage),
			Meta:       NewPageMeta(page, perPage, int64(len(data.SampleDevelopers))),
			Degraded:   true,
		}, nil
	}

	if profiles == nil {
		profiles = []models.Profile{}
	}
	return &DeveloperList{
		Developers: profiles,
		Meta:       NewPageMeta(page, perPage, total),
	}, nil
}

// Get assembles one developer's public page.
func (s *DeveloperService) Get(ctx context.Context, developerID string) (*DeveloperDetail, error) {
	profile, err := s.profiles.FindByID(ctx, developerID)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound.WithMessage("Developer not found")
	}
	if err != nil {
		return nil, apperrors.ErrRemoteRead.Wrap(err)
	}

	services, _, err := s.catalog.Find(ctx, models.ServiceFilter{
		DeveloperID: developerID,
		Page:        1,
		PerPage:     50,
	})
	if err != nil {
		s.logger.Warn("Failed to load developer services",
			zap.String("developer_id", developerID), zap.Error(err))
		services = []models.Service{}
	}
	if services == nil {
		services = []models.Service{}
	}

	avg, count, err := s.reviews.RatingSummary(ctx, developerID)
	if err != nil {
		s.logger.Warn("Failed to load rating summary",
			zap.String("developer_id", developerID), zap.Error(err))
	}

	return &DeveloperDetail{
		Profile:       *profile,
		Services:      services,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// UpdateProfile saves the calling developer's bio and avatar.
func (s *DeveloperService) UpdateProfile(ctx context.Context, identity *models.Identity, bio, avatarURL string) (*models.Profile, error) {
	if !identity.IsDeveloper() {
		return nil, apperrors.ErrForbidden.WithMessage("Only developers have a public profile")
	}

	existing, err := s.profiles.FindByID(ctx, identity.UserID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, apperrors.ErrRemoteRead.Wrap(err)
	}

	profile := &models.Profile{
		ID:        identity.UserID,
		FullName:  identity.FullName,
		Bio:       bio,
		AvatarURL: avatarURL,
	}
	if existing != nil {
		profile.Verified = existing.Verified
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.ErrRemoteWrite.WithMessage("Failed to save profile").Wrap(err)
	}
	return profile, nil
}
