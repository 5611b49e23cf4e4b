package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

type DeveloperController struct {
	developers *services.DeveloperService
	messages   *services.MessageService
}

func NewDeveloperController(developers *services.DeveloperService, messages *services.MessageService) *DeveloperController {
	return &DeveloperController{developers: developers, messages: messages}
}

type UpdateProfileRequest struct {
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// List returns the paginated developers directory.
func (dc *DeveloperController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "12"))

	list, err := dc.developers.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get returns one developer's public page.
func (dc *DeveloperController) Get(c *gin.Context) {
	detail, err := dc.developers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateProfile saves the calling developer's bio and avatar.
func (dc *DeveloperController) UpdateProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	profile, err := dc.developers.UpdateProfile(c.Request.Context(), identity, req.Bio, req.AvatarURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Inbox returns messages addressed to the calling developer.
func (dc *DeveloperController) Inbox(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))

	messages, meta, err := dc.messages.Inbox(c.Request.Context(), identity, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "meta": meta})
}
