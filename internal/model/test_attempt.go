package model

import "time"

// TestAttempt records one finished mock test. Score is the integer percent
// of correct answers.
type TestAttempt struct {
	BaseModel
	UserID     uint         `gorm:"index;not null" json:"user_id"`
	MockTestID uint         `gorm:"index;not null" json:"mock_test_id"`
	MockTest   MockTest     `json:"-"`
	Score      int          `gorm:"not null" json:"score"`
	TakenOn    time.Time    `gorm:"autoCreateTime" json:"taken_on"`
	Answers    []UserAnswer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type UserAnswer struct {
	BaseModel
	TestAttemptID  uint         `gorm:"index;not null" json:"test_attempt_id"`
	QuestionID     uint         `gorm:"index;not null" json:"question_id"`
	SelectedOption AnswerOption `gorm:"size:1" json:"selected_option"`
}
