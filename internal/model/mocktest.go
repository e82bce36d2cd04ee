package model

import "time"

type MockTest struct {
	BaseModel
	Subject     string     `gorm:"size:100" json:"subject"`
	ClassLevel  int        `gorm:"index" json:"class_level"`
	Description string     `gorm:"type:text" json:"description"`
	Date        time.Time  `gorm:"type:date" json:"date"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	BaseModel
	MockTestID    uint         `gorm:"index;not null" json:"mock_test_id"`
	QuestionText  string       `gorm:"type:text;not null" json:"question_text"`
	OptionA       string       `gorm:"size:255;not null" json:"option_a"`
	OptionB       string       `gorm:"size:255;not null" json:"option_b"`
	OptionC       string       `gorm:"size:255;not null" json:"option_c"`
	OptionD       string       `gorm:"size:255;not null" json:"option_d"`
	CorrectOption AnswerOption `gorm:"size:1;not null" json:"-"`
}
