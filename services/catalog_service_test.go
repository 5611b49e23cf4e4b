package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) Find(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Service), args.Get(1).(int64), args.Error(2)
}
func (m *MockServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *MockServiceRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}
func (m *MockServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}
func (m *MockServiceRepository) Update(ctx context.Context, svc *models.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}
func (m *MockServiceRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func developerIdentity(userID string) *models.Identity {
	return &models.Identity{
		UserID:   userID,
		Email:    "dev@example.com",
		FullName: "Dev Example",
		Role:     models.RoleDeveloper,
	}
}

func TestCatalogList(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - live store", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		stored := []models.Service{{ID: "svc-9", Title: "API Integration"}}
		repo.On("Find", ctx, mock.AnythingOfType("models.ServiceFilter")).Return(stored, int64(1), nil).Once()

		list, err := svc.List(ctx, models.ServiceFilter{})

		assert.NoError(t, err)
		assert.False(t, list.Degraded)
		assert.Len(t, list.Services, 1)
		assert.Equal(t, int64(1), list.Meta.Total)
	})

	t.Run("Store down - degrades to the sample dataset", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("Find", ctx, mock.AnythingOfType("models.ServiceFilter")).
			Return(nil, int64(0), errors.New("no reachable servers")).Once()

		list, err := svc.List(ctx, models.ServiceFilter{})

		assert.NoError(t, err)
		assert.True(t, list.Degraded)
		assert.NotEmpty(t, list.Services)
	})

	t.Run("Degraded reads are paginated like live ones", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("Find", ctx, mock.AnythingOfType("models.ServiceFilter")).
			Return(nil, int64(0), errors.New("no reachable servers")).Times(3)

		first, err := svc.List(ctx, models.ServiceFilter{Page: 1, PerPage: 4})
		assert.NoError(t, err)
		assert.Len(t, first.Services, 4)

		second, err := svc.List(ctx, models.ServiceFilter{Page: 2, PerPage: 4})
		assert.NoError(t, err)
		assert.Len(t, second.Services, 4)
		assert.NotEqual(t, first.Services[0].ID, second.Services[0].ID)
		assert.Equal(t, first.Meta.Total, second.Meta.Total)

		beyond, err := svc.List(ctx, models.ServiceFilter{Page: 99, PerPage: 4})
		assert.NoError(t, err)
		assert.Empty(t, beyond.Services)
	})

	t.Run("Degraded reads honor the category filter", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("Find", ctx, mock.AnythingOfType("models.ServiceFilter")).
			Return(nil, int64(0), errors.New("no reachable servers")).Once()

		list, err := svc.List(ctx, models.ServiceFilter{Category: "Web Development"})

		assert.NoError(t, err)
		assert.True(t, list.Degraded)
		for _, s := range list.Services {
			assert.Equal(t, "Web Development", s.Category)
		}
	})
}

func TestCatalogGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing listing is a not-found, not a degraded read", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("FindByID", ctx, "svc-404").Return(nil, mongo.ErrNoDocuments).Once()

		_, err := svc.Get(ctx, "svc-404")

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Service not found", appErr.Message)
	})

	t.Run("Store down - known sample listing is served", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("FindByID", ctx, "svc-1").Return(nil, errors.New("no reachable servers")).Once()

		found, err := svc.Get(ctx, "svc-1")

		assert.NoError(t, err)
		assert.Equal(t, "Landing Page Kit", found.Title)
	})

	t.Run("Store down - unknown listing surfaces a read error", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		repo.On("FindByID", ctx, "svc-404").Return(nil, errors.New("no reachable servers")).Once()

		_, err := svc.Get(ctx, "svc-404")

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrRemoteRead.Code, appErr.Code)
	})
}

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ownership stamped from the identity", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())
		identity := developerIdentity("dev-1")

		repo.On("Create", ctx, mock.AnythingOfType("*models.Service")).Return(nil).Once()

		listing := &models.Service{ID: "svc-n", Title: "SEO Audit", Category: "marketing", Price: 200}
		err := svc.Create(ctx, identity, listing)

		assert.NoError(t, err)
		assert.Equal(t, "dev-1", listing.DeveloperID)
		assert.Equal(t, "Dev Example", listing.DeveloperName)
	})

	t.Run("Customers cannot publish", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		err := svc.Create(ctx, buyerIdentity(), &models.Service{Title: "x", Category: "y"})

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrForbidden.Code, appErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Negative price is rejected", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		err := svc.Create(ctx, developerIdentity("dev-1"), &models.Service{Title: "x", Category: "y", Price: -1})

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Price cannot be negative", appErr.Message)
	})
}

func TestCatalogUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the owner may edit", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		existing := &models.Service{ID: "svc-1", Title: "Landing Page Kit", Category: "web", DeveloperID: "dev-1"}
		repo.On("FindByID", ctx, "svc-1").Return(existing, nil).Once()

		err := svc.Update(ctx, developerIdentity("dev-2"), &models.Service{ID: "svc-1", Title: "Hijacked", Category: "web"})

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrForbidden.Code, appErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Ownership fields survive the update", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		existing := &models.Service{ID: "svc-1", Title: "Landing Page Kit", Category: "web", DeveloperID: "dev-1", DeveloperName: "Dev Example"}
		repo.On("FindByID", ctx, "svc-1").Return(existing, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*models.Service")).Return(nil).Once()

		update := &models.Service{ID: "svc-1", Title: "Landing Page Kit v2", Category: "web", Price: 59.99, DeveloperID: "someone-else"}
		err := svc.Update(ctx, developerIdentity("dev-1"), update)

		assert.NoError(t, err)
		assert.Equal(t, "dev-1", update.DeveloperID)
		assert.Equal(t, "Dev Example", update.DeveloperName)
	})

	t.Run("Rating and verification survive the update", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		existing := &models.Service{ID: "svc-1", Title: "Landing Page Kit", Category: "web", DeveloperID: "dev-1", DeveloperVerified: true, Rating: 4.7}
		repo.On("FindByID", ctx, "svc-1").Return(existing, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*models.Service")).Return(nil).Once()

		update := &models.Service{ID: "svc-1", Title: "Landing Page Kit v2", Category: "web", Price: 59.99}
		err := svc.Update(ctx, developerIdentity("dev-1"), update)

		assert.NoError(t, err)
		assert.True(t, update.DeveloperVerified)
		assert.Equal(t, 4.7, update.Rating)
	})
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the image URL for cleanup", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		existing := &models.Service{ID: "svc-1", DeveloperID: "dev-1", ImageURL: "https://cdn.example.com/svc-1.png"}
		repo.On("FindByID", ctx, "svc-1").Return(existing, nil).Once()
		repo.On("SoftDelete", ctx, "svc-1").Return(nil).Once()

		imageURL, err := svc.Delete(ctx, developerIdentity("dev-1"), "svc-1")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/svc-1.png", imageURL)
	})

	t.Run("Only the owner may delete", func(t *testing.T) {
		repo := new(MockServiceRepository)
		svc := NewCatalogService(repo, zap.NewNop())

		existing := &models.Service{ID: "svc-1", DeveloperID: "dev-1"}
		repo.On("FindByID", ctx, "svc-1").Return(existing, nil).Once()

		_, err := svc.Delete(ctx, developerIdentity("dev-2"), "svc-1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})
}
