package repository

import (
	"errors"
	"time"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	// Create relies on the (student_id, exam_id) unique index: a concurrent
	// duplicate start surfaces as Conflict, never as a second row.
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByStudentAndExam(studentID, examID uint) (*model.Attempt, error)
	// MarkSubmitted performs the conditional InProgress -> Submitted
	// transition. Exactly one of N racing calls succeeds; the rest observe
	// AlreadySubmitted.
	MarkSubmitted(id uint, at time.Time, auto bool) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "exam already attempted")
		}
		return err
	}
	return nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByStudentAndExam(studentID, examID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("student_id = ? AND exam_id = ?", studentID, examID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) MarkSubmitted(id uint, at time.Time, auto bool) error {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND is_submitted = ?", id, false).
		Updates(map[string]any{
			"is_submitted":      true,
			"is_auto_submitted": auto,
			"submitted_at":      at,
			"end_time":          at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the attempt does not exist or it is already terminal;
		// distinguish so callers get the right kind.
		var count int64
		if err := r.db.Model(&model.Attempt{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.New(apperr.KindNotFound, "exam attempt not found")
		}
		return apperr.New(apperr.KindAlreadySubmitted, "exam already submitted")
	}
	return nil
}
