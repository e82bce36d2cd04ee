package model

import "time"

// DailyQuiz is one question assigned to a calendar date. A day's quiz is the
// set of rows sharing the same QuizDate, always served and graded in id order.
type DailyQuiz struct {
	BaseModel
	Question      string       `gorm:"type:text;not null" json:"question"`
	OptionA       string       `gorm:"size:200;not null" json:"option_a"`
	OptionB       string       `gorm:"size:200;not null" json:"option_b"`
	OptionC       string       `gorm:"size:200;not null" json:"option_c"`
	OptionD       string       `gorm:"size:200;not null" json:"option_d"`
	CorrectOption AnswerOption `gorm:"size:1;not null" json:"-"`
	QuizDate      time.Time    `gorm:"type:date;index;not null" json:"quiz_date"`
}

// DailyQuizAttempt is one user's single shot at a day's quiz. Score counts
// correct answers; Percent is the floored percentage. The composite unique
// index is the authoritative one-attempt-per-day gate.
type DailyQuizAttempt struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_quiz_date,priority:1" json:"user_id"`
	QuizDate    time.Time  `gorm:"type:date;not null;uniqueIndex:idx_user_quiz_date,priority:2" json:"quiz_date"`
	Score       int        `gorm:"default:0" json:"score"`
	Percent     int        `gorm:"default:0" json:"percent"`
	Answers     OptionList `gorm:"serializer:json" json:"answers"`
	AttemptedAt time.Time  `gorm:"autoCreateTime" json:"attempted_at"`
}
