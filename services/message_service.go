package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
	"marketplace-backend/repository"
)

// MessageService handles contact-form submissions: general support inquiries
// and messages addressed to a developer. Anonymous senders are allowed; a
// signed-in sender's user ID is attached for the recipient's context.
type MessageService struct {
	messages repository.MessageRepository
	notifier Notifier
}

func NewMessageService(messages repository.MessageRepository, notifier Notifier) *MessageService {
	return &MessageService{messages: messages, notifier: notifier}
}

// Send validates and stores a message. Validation happens before any remote
// call.
func (s *MessageService) Send(ctx context.Context, identity *models.Identity, senderEmail, content, recipientDeveloperID string) error {
	senderEmail = strings.TrimSpace(senderEmail)
	content = strings.TrimSpace(content)
	if senderEmail == "" || content == "" {
		return apperrors.ErrValidation.WithMessage("Please fill in both your email and a message")
	}

	msg := &models.Message{
		ID:                   uuid.NewString(),
		SenderEmail:          senderEmail,
		Content:              content,
		RecipientDeveloperID: recipientDeveloperID,
	}
	var userID string
	if identity != nil {
		userID = identity.UserID
		msg.SenderUserID = userID
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		s.notifier.Show(ctx, userID, "Could not send your message.", models.NotificationError)
		return apperrors.ErrRemoteWrite.WithMessage("Could not send your message").Wrap(err)
	}

	s.notifier.Show(ctx, userID, "Message sent!", models.NotificationSuccess)
	return nil
}

// Inbox returns messages addressed to the calling developer.
func (s *MessageService) Inbox(ctx context.Context, identity *models.Identity, page, perPage int) ([]models.Message, PageMeta, error) {
	if !identity.IsDeveloper() {
		return nil, PageMeta{}, apperrors.ErrForbidden.WithMessage("Only developers have an inbox")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	messages, total, err := s.messages.FindByRecipient(ctx, identity.UserID, page, perPage)
	if err != nil {
		return nil, PageMeta{}, apperrors.ErrRemoteRead.WithMessage("Could not load messages").Wrap(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, NewPageMeta(page, perPage, total), nil
}
