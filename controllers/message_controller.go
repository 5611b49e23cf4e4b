package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

type MessageController struct {
	messages *services.MessageService
}

func NewMessageController(messages *services.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

type SendMessageRequest struct {
	SenderEmail          string `json:"sender_email" binding:"required"`
	Content              string `json:"content" binding:"required"`
	RecipientDeveloperID string `json:"recipient_developer_id"`
}

// Send stores a contact-form submission. Anonymous senders are allowed.
func (mc *MessageController) Send(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in both your email and a message"})
		return
	}

	if err := mc.messages.Send(c.Request.Context(), identity, req.SenderEmail, req.Content, req.RecipientDeveloperID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent"})
}
