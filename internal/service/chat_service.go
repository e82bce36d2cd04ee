package service

import (
	"context"
	"errors"
	"strings"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const chatHistoryLimit = 20

// ConversationStore persists assistant conversation threads.
type ConversationStore interface {
	Create(c *model.ChatConversation) error
	Save(c *model.ChatConversation) error
	FindByConversationID(userID uint, conversationID string) (*model.ChatConversation, error)
	ListByUser(userID uint, limit int) ([]model.ChatConversation, error)
	Delete(userID uint, conversationID string) error
}

// Completer produces an assistant reply for a message history.
type Completer interface {
	Complete(ctx context.Context, history []map[string]string) (string, error)
}

// StreamCompleter produces the reply incrementally.
type StreamCompleter interface {
	CompleteStream(ctx context.Context, history []map[string]string) (<-chan string, <-chan error)
}

// ChatService manages assistant conversations on top of the completion API.
type ChatService struct {
	conversations ConversationStore
	ai            Completer
}

func NewChatService(conversations ConversationStore, ai Completer) *ChatService {
	return &ChatService{conversations: conversations, ai: ai}
}

type ChatReply struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

// beginTurn loads or creates the conversation, appends the user message (a
// re-sent trailing message is not duplicated) and builds the model-facing
// history.
func (s *ChatService) beginTurn(userID uint, conversationID, message string) (*model.ChatConversation, []map[string]string, error) {
	conv, err := s.conversations.FindByConversationID(userID, conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conv = &model.ChatConversation{
			UserID:         userID,
			ConversationID: conversationID,
			Messages:       model.ChatMessages{},
		}
		if err := s.conversations.Create(conv); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	last := len(conv.Messages) - 1
	if last < 0 || conv.Messages[last].Content != message {
		conv.Messages = append(conv.Messages, model.ChatMessage{
			Role:    model.ChatRoleUser,
			Content: message,
		})
	}

	history := make([]map[string]string, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		history = append(history, map[string]string{
			"role":    m.Role,
			"content": m.Content,
		})
	}
	return conv, history, nil
}

// finishTurn appends the assistant reply and persists the conversation.
func (s *ChatService) finishTurn(conv *model.ChatConversation, answer string) error {
	conv.Messages = append(conv.Messages, model.ChatMessage{
		Role:    model.ChatRoleAssistant,
		Content: answer,
	})
	if err := s.conversations.Save(conv); err != nil {
		return err
	}

	logger.Log.Debug("Chat turn completed",
		zap.Uint("user_id", conv.UserID),
		zap.String("conversation_id", conv.ConversationID),
		zap.Int("messages", len(conv.Messages)),
	)
	return nil
}

// Ask appends the user message to the conversation (creating it when the
// conversation id is blank or unknown), queries the model with the full
// history and stores the assistant's reply.
func (s *ChatService) Ask(ctx context.Context, userID uint, conversationID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("no message provided")
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	conv, history, err := s.beginTurn(userID, conversationID, message)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Complete(ctx, history)
	if err != nil {
		return nil, err
	}
	if err := s.finishTurn(conv, answer); err != nil {
		return nil, err
	}

	return &ChatReply{Answer: answer, ConversationID: conversationID}, nil
}

// AskStream behaves like Ask but forwards the reply chunk by chunk through
// send while it arrives. The full reply is persisted once the stream ends.
// A completer without streaming support falls back to a single chunk.
func (s *ChatService) AskStream(ctx context.Context, userID uint, conversationID, message string, send func(chunk string) error) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("no message provided")
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	conv, history, err := s.beginTurn(userID, conversationID, message)
	if err != nil {
		return nil, err
	}

	var answer string
	if streamer, ok := s.ai.(StreamCompleter); ok {
		chunks, errs := streamer.CompleteStream(ctx, history)
		var sb strings.Builder
		for chunk := range chunks {
			sb.WriteString(chunk)
			if err := send(chunk); err != nil {
				return nil, err
			}
		}
		if err := <-errs; err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(sb.String())
	} else {
		answer, err = s.ai.Complete(ctx, history)
		if err != nil {
			return nil, err
		}
		if err := send(answer); err != nil {
			return nil, err
		}
	}

	if err := s.finishTurn(conv, answer); err != nil {
		return nil, err
	}
	return &ChatReply{Answer: answer, ConversationID: conversationID}, nil
}

// SaveTurn stores an already-completed exchange as a new conversation, for
// clients that talk to the model directly and persist the transcript
// afterwards.
func (s *ChatService) SaveTurn(userID uint, userMsg, aiMsg string) (*model.ChatConversation, error) {
	userMsg = strings.TrimSpace(userMsg)
	aiMsg = strings.TrimSpace(aiMsg)
	if userMsg == "" || aiMsg == "" {
		return nil, errors.New("both user and ai messages are required")
	}

	conv := &model.ChatConversation{
		UserID:         userID,
		ConversationID: uuid.NewString(),
		Messages: model.ChatMessages{
			{Role: model.ChatRoleUser, Content: userMsg},
			{Role: model.ChatRoleAssistant, Content: aiMsg},
		},
	}
	if err := s.conversations.Create(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

type ConversationSummary struct {
	ID             uint   `json:"id"`
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	MessageCount   int    `json:"message_count"`
	UpdatedAt      string `json:"updated_at"`
}

// History returns the user's most recent conversations, newest first.
func (s *ChatService) History(userID uint) ([]ConversationSummary, error) {
	convs, err := s.conversations.ListByUser(userID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		summaries = append(summaries, ConversationSummary{
			ID:             c.ID,
			ConversationID: c.ConversationID,
			Title:          c.Title(),
			MessageCount:   len(c.Messages),
			UpdatedAt:      c.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return summaries, nil
}

// Conversation returns the full message list of one thread.
func (s *ChatService) Conversation(userID uint, conversationID string) (*model.ChatConversation, error) {
	conv, err := s.conversations.FindByConversationID(userID, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversationNotFound
		}
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) DeleteConversation(userID uint, conversationID string) error {
	if _, err := s.Conversation(userID, conversationID); err != nil {
		return err
	}
	return s.conversations.Delete(userID, conversationID)
}
