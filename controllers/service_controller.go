package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace-backend/middleware"
	"marketplace-backend/models"
	"marketplace-backend/services"
)

// ImageStore issues presigned upload URLs and deletes stored images.
type ImageStore interface {
	PresignUpload(ctx context.Context, key string) (uploadURL string, headers map[string]string, err error)
	Remove(ctx context.Context, keys []string) error
}

type ServiceController struct {
	catalog *services.CatalogService
	images  ImageStore
}

func NewServiceController(catalog *services.CatalogService, images ImageStore) *ServiceController {
	return &ServiceController{catalog: catalog, images: images}
}

type ServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// List retrieves paginated catalog listings with optional category, search
// and developer filters. Degraded responses come from the bundled sample
// dataset and are flagged as such.
func (sc *ServiceController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "12"))

	filter := models.ServiceFilter{
		Category:    c.Query("category"),
		DeveloperID: c.Query("developer_id"),
		Query:       c.Query("q"),
		Page:        page,
		PerPage:     perPage,
	}

	list, err := sc.catalog.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get retrieves a single listing.
func (sc *ServiceController) Get(c *gin.Context) {
	svc, err := sc.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Create publishes a listing owned by the calling developer.
func (sc *ServiceController) Create(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and category are required"})
		return
	}

	svc := &models.Service{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := sc.catalog.Create(c.Request.Context(), identity, svc); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// Update replaces a listing the calling developer owns.
func (sc *ServiceController) Update(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and category are required"})
		return
	}

	svc := &models.Service{
		ID:          c.Param("id"),
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := sc.catalog.Update(c.Request.Context(), identity, svc); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Delete removes a listing and, best-effort, its stored image.
func (sc *ServiceController) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	imageURL, err := sc.catalog.Delete(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if key := imageKeyFromURL(imageURL); key != "" {
		if err := sc.images.Remove(c.Request.Context(), []string{key}); err != nil {
			// The listing is gone either way; an orphaned image is acceptable.
			zap.L().Warn("Failed to delete service image", zap.String("key", key), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// PresignUpload hands the developer a presigned PUT URL for a service image.
func (sc *ServiceController) PresignUpload(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	key := fmt.Sprintf("%s/%s-%s", identity.UserID, uuid.NewString()[:8], filename)
	uploadURL, headers, err := sc.images.PresignUpload(c.Request.Context(), key)
	if err != nil {
		zap.L().Error("Failed to presign upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"headers":    headers,
		"key":        key,
	})
}

// imageKeyFromURL extracts the object key from a stored image URL. Anything
// unparseable yields an empty key, which skips the cleanup.
func imageKeyFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
