package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Exam struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ExaminerID      uint           `json:"examiner_id" gorm:"not null;index"`
	Examiner        User           `json:"-" gorm:"foreignKey:ExaminerID"`
	Title           string         `json:"title" gorm:"not null"`
	Topic           string         `json:"topic" gorm:"not null"`
	DifficultyLevel string         `json:"difficulty_level" gorm:"not null"` // easy, medium, hard
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	TotalQuestions  int            `json:"total_questions" gorm:"not null"`
	IsPublished     bool           `json:"is_published" gorm:"not null;index"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
