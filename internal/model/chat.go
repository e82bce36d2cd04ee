package model

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatMessages []ChatMessage

// ChatConversation holds the full message history of one assistant thread.
type ChatConversation struct {
	BaseModel
	UserID         uint         `gorm:"index;not null" json:"user_id"`
	ConversationID string       `gorm:"size:36;uniqueIndex" json:"conversation_id"`
	Messages       ChatMessages `gorm:"serializer:json" json:"messages"`
}

// Title returns a short label derived from the first user message, truncated
// on rune boundaries.
func (c *ChatConversation) Title() string {
	for _, m := range c.Messages {
		if m.Role == ChatRoleUser {
			runes := []rune(m.Content)
			if len(runes) > 50 {
				return string(runes[:50])
			}
			return m.Content
		}
	}
	return "New conversation"
}
