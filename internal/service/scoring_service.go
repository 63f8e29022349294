package service

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

// ScoringService produces the single immutable Result of a submitted
// attempt and serves Result reads. A Result is never recomputed.
type ScoringService interface {
	// Evaluate scores a submitted attempt exactly once. A second call fails
	// with AlreadyEvaluated via the Result uniqueness constraint.
	Evaluate(attemptID uint) (*model.Result, error)
	MyResults(studentID uint) ([]dto.ResultResponse, error)
	ExamResult(studentID, examID uint) (*dto.ResultResponse, error)
}

type scoringService struct {
	attemptRepo  repository.AttemptRepository
	responseRepo repository.ResponseRepository
	resultRepo   repository.ResultRepository
}

func NewScoringService(attemptRepo repository.AttemptRepository, responseRepo repository.ResponseRepository, resultRepo repository.ResultRepository) ScoringService {
	return &scoringService{
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
		resultRepo:   resultRepo,
	}
}

func (s *scoringService) Evaluate(attemptID uint) (*model.Result, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsSubmitted || attempt.SubmittedAt == nil {
		return nil, apperr.New(apperr.KindConflict, "attempt is not submitted")
	}

	order, err := attempt.OrderIDs()
	if err != nil {
		return nil, err
	}
	correct, err := s.responseRepo.CountCorrect(attemptID)
	if err != nil {
		return nil, err
	}

	// Unanswered questions stay in the denominator: total is the length of
	// the persisted order, not the response count.
	total := len(order)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(correct)/float64(total)*100*100) / 100
	}

	elapsed := int(attempt.SubmittedAt.Sub(attempt.StartTime).Seconds())
	if elapsed < 1 {
		elapsed = 1
	}

	result := &model.Result{
		AttemptID:        attempt.ID,
		StudentID:        attempt.StudentID,
		ExamID:           attempt.ExamID,
		Score:            int(correct),
		TotalQuestions:   total,
		Percentage:       percentage,
		TimeTakenSeconds: elapsed,
		EvaluatedAt:      time.Now(),
	}
	if err := s.resultRepo.Create(result); err != nil {
		if apperr.IsKind(err, apperr.KindAlreadyEvaluated) {
			// The close transition should have made this unreachable; if it
			// fires, the CAS guard was bypassed and the constraint is the
			// last line of defense.
			log.Error().Uint("attempt_id", attemptID).Msg("Duplicate evaluation blocked by result uniqueness")
		}
		return nil, err
	}
	return result, nil
}

func (s *scoringService) MyResults(studentID uint) ([]dto.ResultResponse, error) {
	results, err := s.resultRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, ResultToDTO(&result))
	}
	return responses, nil
}

func (s *scoringService) ExamResult(studentID, examID uint) (*dto.ResultResponse, error) {
	result, err := s.resultRepo.FindByStudentAndExam(studentID, examID)
	if err != nil {
		return nil, err
	}
	resp := ResultToDTO(result)
	return &resp, nil
}

// ResultToDTO formats a Result for callers, fixing the percentage at two
// decimal places.
func ResultToDTO(result *model.Result) dto.ResultResponse {
	return dto.ResultResponse{
		AttemptID:        result.AttemptID,
		ExamID:           result.ExamID,
		Score:            result.Score,
		TotalQuestions:   result.TotalQuestions,
		Percentage:       fmt.Sprintf("%.2f", result.Percentage),
		TimeTakenSeconds: result.TimeTakenSeconds,
		EvaluatedAt:      result.EvaluatedAt,
	}
}
