package model

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestConversationTitle(t *testing.T) {
	conv := &ChatConversation{Messages: ChatMessages{
		{Role: ChatRoleUser, Content: "What is photosynthesis?"},
		{Role: ChatRoleAssistant, Content: "A process..."},
	}}
	assert.Equal(t, "What is photosynthesis?", conv.Title())

	empty := &ChatConversation{}
	assert.Equal(t, "New conversation", empty.Title())
}

func TestConversationTitle_TruncatesOnRuneBoundary(t *testing.T) {
	// 60 multi-byte runes; a byte-based cut would split one in the middle.
	conv := &ChatConversation{Messages: ChatMessages{
		{Role: ChatRoleUser, Content: strings.Repeat("प", 60)},
	}}

	title := conv.Title()
	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 50, utf8.RuneCountInString(title))
}
