package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "marketplace-backend/pkg/errors"
)

// respondError maps an application error to its JSON response. Anything that
// is not an *apperrors.Error becomes an opaque 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
