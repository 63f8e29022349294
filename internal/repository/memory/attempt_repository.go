package memory

import (
	"time"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type attemptRepository struct {
	store *Store
}

func NewAttemptRepository(store *Store) repository.AttemptRepository {
	return &attemptRepository{store: store}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := attemptKey{studentID: attempt.StudentID, examID: attempt.ExamID}
	if _, ok := s.attemptByPair[key]; ok {
		return apperr.New(apperr.KindConflict, "exam already attempted")
	}
	s.nextAttemptID++
	attempt.ID = s.nextAttemptID
	s.attempts[attempt.ID] = *attempt
	s.attemptByPair[key] = attempt.ID
	return nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByStudentAndExam(studentID, examID uint) (*model.Attempt, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.attemptByPair[attemptKey{studentID: studentID, examID: examID}]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
	}
	attempt := s.attempts[id]
	return &attempt, nil
}

func (r *attemptRepository) MarkSubmitted(id uint, at time.Time, auto bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "exam attempt not found")
	}
	if attempt.IsSubmitted {
		return apperr.New(apperr.KindAlreadySubmitted, "exam already submitted")
	}
	submittedAt := at
	attempt.IsSubmitted = true
	attempt.IsAutoSubmitted = auto
	attempt.SubmittedAt = &submittedAt
	attempt.EndTime = &submittedAt
	s.attempts[id] = attempt
	return nil
}
