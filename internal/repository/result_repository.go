package repository

import (
	"errors"
	"time"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"gorm.io/gorm"
)

// LeaderboardRow is the ranking projection joined with student identity.
type LeaderboardRow struct {
	StudentID        uint      `json:"student_id"`
	StudentName      string    `json:"student_name"`
	StudentEmail     string    `json:"student_email"`
	Score            int       `json:"score"`
	Percentage       float64   `json:"percentage"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	EvaluatedAt      time.Time `json:"evaluated_at"`
}

type ResultRepository interface {
	// Create converts a duplicate insert for the same attempt into
	// AlreadyEvaluated via the unique index on attempt_id.
	Create(result *model.Result) error
	FindByAttempt(attemptID uint) (*model.Result, error)
	FindByStudent(studentID uint) ([]model.Result, error)
	FindByStudentAndExam(studentID, examID uint) (*model.Result, error)
	ListByExam(examID uint) ([]model.Result, error)
	// RankByExam orders by percentage desc, elapsed time asc, then
	// evaluation timestamp and id ascending so equal (percentage, time)
	// pairs rank deterministically.
	RankByExam(examID uint, limit int) ([]LeaderboardRow, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	if err := r.db.Create(result).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindAlreadyEvaluated, "attempt already evaluated")
		}
		return err
	}
	return nil
}

func (r *resultRepository) FindByAttempt(attemptID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.Where("attempt_id = ?", attemptID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "result not found")
		}
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByStudent(studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Where("student_id = ?", studentID).
		Order("evaluated_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindByStudentAndExam(studentID, examID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.Where("student_id = ? AND exam_id = ?", studentID, examID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "result not found")
		}
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) ListByExam(examID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Where("exam_id = ?", examID).
		Order("evaluated_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) RankByExam(examID uint, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.Model(&model.Result{}).
		Select("results.student_id, users.name AS student_name, users.email AS student_email, results.score, results.percentage, results.time_taken_seconds, results.evaluated_at").
		Joins("JOIN users ON users.id = results.student_id").
		Where("results.exam_id = ?", examID).
		Order("results.percentage DESC, results.time_taken_seconds ASC, results.evaluated_at ASC, results.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
