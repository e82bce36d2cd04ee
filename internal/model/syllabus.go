package model

type Syllabus struct {
	BaseModel
	Board      string `gorm:"size:50;not null" json:"board"`
	ClassLevel int    `gorm:"not null" json:"class_level"`
	Subject    string `gorm:"size:50;not null;index" json:"subject"`
	Content    string `gorm:"type:text" json:"content"`
	PDFURL     string `gorm:"size:512" json:"pdf_url"`
}

const (
	ExamTypePrelims = "Prelims"
	ExamTypeMain    = "Main"
)

type PreviousPaper struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Year     int    `gorm:"index" json:"year"`
	ExamType string `gorm:"size:10" json:"exam_type"`
	FileURL  string `gorm:"size:512" json:"file_url"`
}

type Formula struct {
	BaseModel
	Subject string `gorm:"size:30;not null;index" json:"subject"`
	Heading string `gorm:"size:100;not null" json:"heading"`
	// Unicode or HTML allowed.
	Formula string `gorm:"type:text;not null" json:"formula"`
}
