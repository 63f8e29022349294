package service

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

// ResponseService is the response ledger: one upsertable row per
// (attempt, question) while the attempt is open, frozen afterwards.
type ResponseService interface {
	// RecordAnswer computes correctness at write time and upserts the
	// (attempt, question) row. Safe under client retries: a duplicate call
	// overwrites, never duplicates.
	RecordAnswer(studentID, attemptID uint, req dto.RecordAnswerRequest) error
	// Review returns the attempt with its full response set, including
	// skipped questions, in the attempt's randomized order. Owner only.
	Review(studentID, attemptID uint) (*dto.AttemptReviewResponse, error)
}

type responseService struct {
	attemptRepo  repository.AttemptRepository
	examRepo     repository.ExamRepository
	responseRepo repository.ResponseRepository
}

func NewResponseService(attemptRepo repository.AttemptRepository, examRepo repository.ExamRepository, responseRepo repository.ResponseRepository) ResponseService {
	return &responseService{
		attemptRepo:  attemptRepo,
		examRepo:     examRepo,
		responseRepo: responseRepo,
	}
}

func (s *responseService) RecordAnswer(studentID, attemptID uint, req dto.RecordAnswerRequest) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.StudentID != studentID {
		return apperr.New(apperr.KindNotFound, "exam attempt not found")
	}
	if attempt.IsSubmitted {
		return apperr.New(apperr.KindAttemptClosed, "exam already submitted")
	}

	question, err := s.examRepo.FindQuestion(req.QuestionID)
	if err != nil {
		return err
	}
	if question.ExamID != attempt.ExamID {
		return apperr.New(apperr.KindNotFound, "question not found")
	}

	response := &model.Response{
		AttemptID:      attemptID,
		QuestionID:     question.ID,
		SelectedOption: req.SelectedOption,
		IsCorrect:      req.SelectedOption == question.CorrectOption,
		AnsweredAt:     time.Now(),
	}
	if err := s.responseRepo.Upsert(response); err != nil {
		log.Error().Err(err).Uint("attempt_id", attemptID).Uint("question_id", question.ID).Msg("Failed to upsert response")
		return err
	}
	return nil
}

func (s *responseService) Review(studentID, attemptID uint) (*dto.AttemptReviewResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, apperr.New(apperr.KindNotFound, "exam attempt not found")
	}

	order, err := attempt.OrderIDs()
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uint]model.Response, len(responses))
	for _, resp := range responses {
		byQuestion[resp.QuestionID] = resp
	}

	review := &dto.AttemptReviewResponse{
		Attempt: dto.AttemptResponse{
			ID:              attempt.ID,
			ExamID:          attempt.ExamID,
			StartTime:       attempt.StartTime,
			EndTime:         attempt.EndTime,
			SubmittedAt:     attempt.SubmittedAt,
			IsSubmitted:     attempt.IsSubmitted,
			IsAutoSubmitted: attempt.IsAutoSubmitted,
		},
	}
	for _, questionID := range order {
		question, err := s.examRepo.FindQuestion(questionID)
		if err != nil {
			return nil, err
		}
		item := dto.ResponseReviewItem{
			QuestionID:    question.ID,
			QuestionText:  question.QuestionText,
			OptionA:       question.OptionA,
			OptionB:       question.OptionB,
			OptionC:       question.OptionC,
			OptionD:       question.OptionD,
			CorrectOption: question.CorrectOption,
		}
		if resp, ok := byQuestion[questionID]; ok {
			item.SelectedOption = resp.SelectedOption
			item.IsCorrect = resp.IsCorrect
			item.AnsweredAt = resp.AnsweredAt
		}
		review.Responses = append(review.Responses, item)
	}
	return review, nil
}
