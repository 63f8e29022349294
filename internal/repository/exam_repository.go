package repository

import (
	"errors"
	"time"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	Publish(examID, examinerID uint, at time.Time) (*model.Exam, error)
	FindByExaminer(examinerID uint) ([]model.Exam, error)
	FindByIDForExaminer(examID, examinerID uint) (*model.Exam, error)
	ListPublished() ([]model.Exam, error)
	FindPublishedWithQuestions(examID uint) (*model.Exam, error)
	FindQuestion(questionID uint) (*model.Question, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// Creates associated questions in the same insert.
	return r.db.Create(exam).Error
}

func (r *examRepository) Publish(examID, examinerID uint, at time.Time) (*model.Exam, error) {
	res := r.db.Model(&model.Exam{}).
		Where("id = ? AND examiner_id = ?", examID, examinerID).
		Updates(map[string]any{"is_published": true, "published_at": at})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.New(apperr.KindNotFound, "exam not found")
	}
	var exam model.Exam
	if err := r.db.First(&exam, examID).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByExaminer(examinerID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("examiner_id = ?", examinerID).
		Order("created_at DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) FindByIDForExaminer(examID, examinerID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.question_order ASC")
	}).Where("id = ? AND examiner_id = ?", examID, examinerID).First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "exam not found")
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) ListPublished() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("is_published = ?", true).
		Order("published_at DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) FindPublishedWithQuestions(examID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.question_order ASC")
	}).Where("id = ? AND is_published = ?", examID, true).First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "exam not found or not available")
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindQuestion(questionID uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "question not found")
		}
		return nil, err
	}
	return &question, nil
}
