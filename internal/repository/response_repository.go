package repository

import (
	"github.com/trnhan241/examguard/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository interface {
	// Upsert inserts or overwrites the (attempt, question) row. Duplicate
	// client retries converge on a single row with the latest selection.
	Upsert(response *model.Response) error
	ListByAttempt(attemptID uint) ([]model.Response, error)
	CountCorrect(attemptID uint) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Upsert(response *model.Response) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option", "is_correct", "answered_at",
		}),
	}).Create(response).Error
}

func (r *responseRepository) ListByAttempt(attemptID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("answered_at ASC").
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) CountCorrect(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).
		Where("attempt_id = ? AND is_correct = ?", attemptID, true).
		Count(&count).Error
	return count, err
}
