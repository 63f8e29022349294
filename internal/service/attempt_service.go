package service

import (
	"math/rand"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

const (
	TriggerManual  = "manual"
	TriggerTimeout = "timeout"
)

// AttemptService owns the attempt state machine: start creates the single
// attempt a student gets per exam, close performs the one-way
// InProgress -> Submitted transition.
type AttemptService interface {
	Start(studentID, examID uint) (*dto.StartAttemptResponse, error)
	// Close transitions the attempt to Submitted. The timeout trigger is
	// informational; it passes through the same guards as a manual submit.
	Close(studentID, attemptID uint, trigger string) (*dto.AttemptResponse, error)
}

type attemptService struct {
	examRepo    repository.ExamRepository
	attemptRepo repository.AttemptRepository
}

func NewAttemptService(examRepo repository.ExamRepository, attemptRepo repository.AttemptRepository) AttemptService {
	return &attemptService{examRepo: examRepo, attemptRepo: attemptRepo}
}

func (s *attemptService) Start(studentID, examID uint) (*dto.StartAttemptResponse, error) {
	exam, err := s.examRepo.FindPublishedWithQuestions(examID)
	if err != nil {
		return nil, err
	}

	// Uniform shuffle, generated once and persisted; re-fetching the attempt
	// always yields the same order.
	order := make([]uint, len(exam.Questions))
	for i, q := range exam.Questions {
		order[i] = q.ID
	}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	attempt := &model.Attempt{
		StudentID: studentID,
		ExamID:    examID,
		StartTime: time.Now(),
	}
	if err := attempt.SetOrderIDs(order); err != nil {
		return nil, err
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	questionsByID := make(map[uint]model.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		questionsByID[q.ID] = q
	}
	resp := &dto.StartAttemptResponse{
		AttemptID: attempt.ID,
		StartTime: attempt.StartTime,
	}
	if err := copier.Copy(&resp.Exam, exam); err != nil {
		return nil, err
	}
	for _, id := range order {
		q := questionsByID[id]
		var sq dto.StudentQuestionResponse
		if err := copier.Copy(&sq, &q); err != nil {
			return nil, err
		}
		resp.Questions = append(resp.Questions, sq)
	}
	return resp, nil
}

func (s *attemptService) Close(studentID, attemptID uint, trigger string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
	}

	auto := trigger == TriggerTimeout
	if err := s.attemptRepo.MarkSubmitted(attemptID, time.Now(), auto); err != nil {
		return nil, err
	}

	closed, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attempt_id", attemptID).Msg("Failed to reload attempt after close")
		return nil, err
	}
	var resp dto.AttemptResponse
	if err := copier.Copy(&resp, closed); err != nil {
		return nil, err
	}
	return &resp, nil
}
