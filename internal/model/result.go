package model

import "time"

// Result is the immutable scored outcome of a submitted attempt, created
// exactly once. The unique index on attempt_id is the last line of defense
// against double scoring.
type Result struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	AttemptID        uint      `json:"attempt_id" gorm:"not null;uniqueIndex"`
	Attempt          Attempt   `json:"-" gorm:"foreignKey:AttemptID"`
	StudentID        uint      `json:"student_id" gorm:"not null;index"`
	ExamID           uint      `json:"exam_id" gorm:"not null;index"`
	Score            int       `json:"score" gorm:"not null"`
	TotalQuestions   int       `json:"total_questions" gorm:"not null"`
	Percentage       float64   `json:"percentage" gorm:"type:decimal(5,2);not null"`
	TimeTakenSeconds int       `json:"time_taken_seconds" gorm:"not null"`
	EvaluatedAt      time.Time `json:"evaluated_at" gorm:"not null"`
}
