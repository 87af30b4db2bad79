package services

import (
	"context"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

// MessageService handles renter/owner messaging on a listing. Visibility is
// enforced server-side: an owner receives the full thread, everyone else only
// their own messages.
type MessageService interface {
	List(ctx context.Context, flatID string) ([]models.Message, error)
	Send(ctx context.Context, flatID, content string) (validate.Errors, *models.Message, error)
}

type messageService struct {
	client    api.Client
	validator *validate.Validator
	log       logging.Logger
}

func NewMessageService(client api.Client, validator *validate.Validator, log logging.Logger) MessageService {
	return &messageService{client: client, validator: validator, log: log}
}

func (s *messageService) List(ctx context.Context, flatID string) ([]models.Message, error) {
	return s.client.Messages(ctx, flatID)
}

func (s *messageService) Send(ctx context.Context, flatID, content string) (validate.Errors, *models.Message, error) {
	if msg := s.validator.Validate(ctx, validate.FieldMessageContent, content, validate.Context{}); msg != "" {
		return validate.Errors{validate.FieldMessageContent: msg}, nil, nil
	}

	sent, err := s.client.SendMessage(ctx, flatID, content)
	if err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not send the message. Please try again.")}, nil, nil
	}
	return nil, sent, nil
}
