package services

import (
	"context"
	"strings"
	"sync"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/logging"
)

// historyLimit bounds how many prior turns are replayed to the assistant
// backend per question.
const historyLimit = 10

// AssistantService is the AI chat widget: single-turn questions with a short
// rolling history for context.
type AssistantService interface {
	Ask(ctx context.Context, question string) (string, error)
	Reset()
}

type assistantService struct {
	client api.Client
	log    logging.Logger

	mu      sync.Mutex
	history []models.ChatTurn
}

func NewAssistantService(client api.Client, log logging.Logger) AssistantService {
	return &assistantService{client: client, log: log}
}

func (s *assistantService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil
	}

	s.mu.Lock()
	turns := append(append([]models.ChatTurn(nil), s.history...), models.ChatTurn{
		Role:    models.ChatRoleUser,
		Content: question,
	})
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, turns)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.history = append(s.history,
		models.ChatTurn{Role: models.ChatRoleUser, Content: question},
		models.ChatTurn{Role: models.ChatRoleAssistant, Content: reply},
	)
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
	s.mu.Unlock()

	return reply, nil
}

// Reset drops the conversation history (e.g. on logout).
func (s *assistantService) Reset() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}
