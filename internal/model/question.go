package model

import "time"

type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ExamID        uint      `json:"exam_id" gorm:"not null;index"`
	QuestionText  string    `json:"question_text" gorm:"type:text;not null"`
	OptionA       string    `json:"option_a" gorm:"type:text;not null"`
	OptionB       string    `json:"option_b" gorm:"type:text;not null"`
	OptionC       string    `json:"option_c" gorm:"type:text;not null"`
	OptionD       string    `json:"option_d" gorm:"type:text;not null"`
	CorrectOption int       `json:"-" gorm:"not null"` // 1-4, never serialized to students
	QuestionOrder int       `json:"question_order" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}
