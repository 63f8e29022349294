package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Attempt is one student's single run through one exam. The randomized
// question order is generated once at creation and stored verbatim; every
// later read returns the same sequence. (student_id, exam_id) is unique, so
// single-attempt-per-exam is enforced by the insert itself.
type Attempt struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	StudentID       uint           `json:"student_id" gorm:"not null;uniqueIndex:uniq_attempt_student_exam"`
	Student         User           `json:"-" gorm:"foreignKey:StudentID"`
	ExamID          uint           `json:"exam_id" gorm:"not null;uniqueIndex:uniq_attempt_student_exam"`
	Exam            Exam           `json:"-" gorm:"foreignKey:ExamID"`
	QuestionOrder   datatypes.JSON `json:"question_order" gorm:"not null"` // array of question ids
	StartTime       time.Time      `json:"start_time" gorm:"not null"`
	EndTime         *time.Time     `json:"end_time,omitempty"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	IsSubmitted     bool           `json:"is_submitted" gorm:"not null;default:false"`
	IsAutoSubmitted bool           `json:"is_auto_submitted" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// OrderIDs decodes the persisted question order.
func (a *Attempt) OrderIDs() ([]uint, error) {
	var ids []uint
	if err := json.Unmarshal(a.QuestionOrder, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetOrderIDs encodes the question order for persistence.
func (a *Attempt) SetOrderIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	a.QuestionOrder = datatypes.JSON(raw)
	return nil
}
