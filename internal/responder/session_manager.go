package responder

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"google.golang.org/adk/session"
)

// ChatSession identifica a sessão ADK usada por uma única pergunta
type ChatSession struct {
	ID     string
	UserID string
}

// SessionManager cria e descarta sessões efêmeras no SessionService do ADK.
// Cada pergunta recebe uma sessão nova; nenhum histórico sobrevive à requisição.
type SessionManager struct {
	service session.Service
	appName string
	userID  string
}

// NewSessionManager cria um SessionManager para a aplicação informada
func NewSessionManager(service session.Service, appName string) *SessionManager {
	return &SessionManager{
		service: service,
		appName: appName,
		userID:  "default-user",
	}
}

// Open cria uma sessão com ID aleatório
func (sm *SessionManager) Open(ctx context.Context) (*ChatSession, error) {
	chatSession := &ChatSession{
		ID:     uuid.NewString(),
		UserID: sm.userID,
	}

	_, err := sm.service.Create(ctx, &session.CreateRequest{
		AppName:   sm.appName,
		UserID:    chatSession.UserID,
		SessionID: chatSession.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return chatSession, nil
}

// Close remove a sessão; falhas são apenas registradas
func (sm *SessionManager) Close(ctx context.Context, chatSession *ChatSession) {
	if chatSession == nil {
		return
	}
	err := sm.service.Delete(ctx, &session.DeleteRequest{
		AppName:   sm.appName,
		UserID:    chatSession.UserID,
		SessionID: chatSession.ID,
	})
	if err != nil {
		log.Printf("Failed to delete session %s: %v", chatSession.ID, err)
	}
}
