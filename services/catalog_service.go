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

// ServiceList is a page of catalog listings. Degraded marks a response built
// from the bundled sample dataset because the document store was unreachable;
// callers surface it as a warning rather than an error so browsing keeps
// working.
type ServiceList struct {
	Services []models.Service `json:"services"`
	Meta     PageMeta         `json:"meta"`
	Degraded bool             `json:"degraded"`
}

// PageMeta describes one page of a paginated response.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

func NewPageMeta(page, perPage int, total int64) PageMeta {
	totalPages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		totalPages++
	}
	return PageMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    total > int64(page*perPage),
	}
}

// CatalogService owns catalog listings and the degraded-read policy: the
// repository reports failures verbatim, and the decision to substitute the
// sample dataset is made here, where both branches stay independently
// testable.
type CatalogService struct {
	repo   repository.ServiceRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// List returns a page of listings, falling back to the bundled dataset when
// the store is unreachable.
func (s *CatalogService) List(ctx context.Context, filter models.ServiceFilter) (*ServiceList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 12
	}

	services, total, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Warn("Catalog read failed, serving sample dataset", zap.Error(err))
		sample := filterSample(filter)
		return &ServiceList{
			Services: pageSlice(sample, filter.Page, filter.PerPage),
			Meta:     NewPageMeta(filter.Page, filter.PerPage, int64(len(sample))),
			Degraded: true,
		}, nil
	}

	if services == nil {
		services = []models.Service{}
	}
	return &ServiceList{
		Services: services,
		Meta:     NewPageMeta(filter.Page, filter.PerPage, total),
	}, nil
}

// Get returns one listing, consulting the sample dataset when the store is
// unreachable. A listing missing from both is a plain not-found.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound.WithMessage("Service not found")
	}
	if err != nil {
		s.logger.Warn("Catalog read failed, consulting sample dataset",
			zap.String("service_id", id), zap.Error(err))
		if sample, ok := data.FindSampleService(id); ok {
			return sample, nil
		}
		return nil, apperrors.ErrRemoteRead.Wrap(err)
	}
	return svc, nil
}

// Create publishes a new listing owned by the calling developer.
func (s *CatalogService) Create(ctx context.Context, identity *models.Identity, svc *models.Service) error {
	if !identity.IsDeveloper() {
		return apperrors.ErrForbidden.WithMessage("Only developers can publish services")
	}
	if err := validateListing(svc); err != nil {
		return err
	}

	svc.DeveloperID = identity.UserID
	svc.DeveloperName = identity.FullName
	if err := s.repo.Create(ctx, svc); err != nil {
		return apperrors.ErrRemoteWrite.WithMessage("Failed to publish service").Wrap(err)
	}
	return nil
}

// Update replaces a listing. Only the owning developer may touch it.
func (s *CatalogService) Update(ctx context.Context, identity *models.Identity, svc *models.Service) error {
	existing, err := s.repo.FindByID(ctx, svc.ID)
	if err == mongo.ErrNoDocuments {
		return apperrors.ErrNotFound.WithMessage("Service not found")
	}
	if err != nil {
		return apperrors.ErrRemoteRead.Wrap(err)
	}
	if existing.DeveloperID != identity.UserID {
		return apperrors.ErrForbidden.WithMessage("You can only edit your own services")
	}
	if err := validateListing(svc); err != nil {
		return err
	}

	svc.DeveloperID = existing.DeveloperID
	svc.DeveloperName = existing.DeveloperName
	svc.DeveloperVerified = existing.DeveloperVerified
	svc.Rating = existing.Rating
	svc.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, svc); err != nil {
		return apperrors.ErrRemoteWrite.WithMessage("Failed to update service").Wrap(err)
	}
	return nil
}

// Delete soft-deletes a listing and hands back the image URL so the caller
// can clean up object storage best-effort.
func (s *CatalogService) Delete(ctx context.Context, identity *models.Identity, id string) (imageURL string, err error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return "", apperrors.ErrNotFound.WithMessage("Service not found")
	}
	if err != nil {
		return "", apperrors.ErrRemoteRead.Wrap(err)
	}
	if existing.DeveloperID != identity.UserID {
		return "", apperrors.ErrForbidden.WithMessage("You can only delete your own services")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return "", apperrors.ErrRemoteWrite.WithMessage("Failed to delete service").Wrap(err)
	}
	return existing.ImageURL, nil
}

func validateListing(svc *models.Service) error {
	if svc.Title == "" || svc.Category == "" {
		return apperrors.ErrValidation.WithMessage("Title and category are required")
	}
	if svc.Price < 0 {
		return apperrors.ErrValidation.WithMessage("Price cannot be negative")
	}
	return nil
}

// pageSlice cuts one page out of an in-memory listing so the degraded path
// paginates the same way the live one does.
func pageSlice[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// filterSample applies the category and query filters to the bundled dataset
// so the degraded path honors the same narrowing as the live one.
func filterSample(f models.ServiceFilter) []models.Service {
	out := make([]models.Service, 0, len(data.SampleServices))
	for _, svc := range data.SampleServices {
		if f.Category != "" && svc.Category != f.Category {
			continue
		}
		if f.DeveloperID != "" && svc.DeveloperID != f.DeveloperID {
			continue
		}
		if f.Query != "" && !containsFold(svc.Title, f.Query) {
			continue
		}
		out = append(out, svc)
	}
	return out
}
