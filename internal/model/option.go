package model

import (
	"strings"

	"crackit_backend/internal/util"
)

// AnswerOption identifies one of the four choices of a question. The empty
// value means the student skipped the question.
type AnswerOption string

const (
	OptionA    AnswerOption = "A"
	OptionB    AnswerOption = "B"
	OptionC    AnswerOption = "C"
	OptionD    AnswerOption = "D"
	OptionNone AnswerOption = ""
)

// ParseOption normalizes raw input into a valid option. Blank input maps to
// OptionNone; anything outside A-D is rejected.
func ParseOption(raw string) (AnswerOption, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch AnswerOption(s) {
	case OptionA, OptionB, OptionC, OptionD, OptionNone:
		return AnswerOption(s), nil
	default:
		return OptionNone, util.ErrInvalidOption
	}
}

// Matches reports whether the submitted option equals the correct one,
// ignoring case. A skipped answer never matches.
func (o AnswerOption) Matches(correct AnswerOption) bool {
	if o == OptionNone {
		return false
	}
	return strings.EqualFold(string(o), string(correct))
}

// OptionList is stored as a JSON array in a single column.
type OptionList []AnswerOption
