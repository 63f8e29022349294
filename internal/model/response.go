package model

import "time"

// Response records a student's selection for one question within one
// attempt. Upsertable while the attempt is open (unique on
// attempt_id+question_id), frozen once the attempt closes. Correctness is
// computed at write time and never re-derived.
type Response struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	AttemptID      uint      `json:"attempt_id" gorm:"not null;uniqueIndex:uniq_response_attempt_question"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex:uniq_response_attempt_question"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption int       `json:"selected_option" gorm:"not null"` // 1-4
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	AnsweredAt     time.Time `json:"answered_at" gorm:"not null"`
}
