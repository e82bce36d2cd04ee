package model

type Keyword struct {
	BaseModel
	Title   string `gorm:"size:100" json:"title"`
	Subject string `gorm:"size:30;index" json:"subject"`
	Word    string `gorm:"size:50" json:"word"`
	Meaning string `gorm:"type:text;not null" json:"meaning"`
}
