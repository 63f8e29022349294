package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

// ExamService covers the examiner-facing catalog operations plus the
// published listing students browse. Exams are immutable once published.
type ExamService interface {
	CreateExam(examinerID uint, req dto.CreateExamRequest) (*dto.ExamDetailResponse, error)
	PublishExam(examinerID, examID uint) (*dto.ExamSummaryResponse, error)
	ListMyExams(examinerID uint) ([]dto.ExamSummaryResponse, error)
	GetExamPreview(examinerID, examID uint) (*dto.ExamDetailResponse, error)
	ListAvailableExams() ([]dto.ExamSummaryResponse, error)
}

type examService struct {
	examRepo repository.ExamRepository
}

func NewExamService(examRepo repository.ExamRepository) ExamService {
	return &examService{examRepo: examRepo}
}

func (s *examService) CreateExam(examinerID uint, req dto.CreateExamRequest) (*dto.ExamDetailResponse, error) {
	orders := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if orders[q.QuestionOrder] {
			return nil, apperr.Newf(apperr.KindValidation, "duplicate question_order %d", q.QuestionOrder)
		}
		orders[q.QuestionOrder] = true
	}

	exam := &model.Exam{
		ExaminerID:      examinerID,
		Title:           req.Title,
		Topic:           req.Topic,
		DifficultyLevel: req.DifficultyLevel,
		DurationMinutes: req.DurationMinutes,
		TotalQuestions:  len(req.Questions),
	}
	for _, q := range req.Questions {
		exam.Questions = append(exam.Questions, model.Question{
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			QuestionOrder: q.QuestionOrder,
		})
	}

	if err := s.examRepo.Create(exam); err != nil {
		log.Error().Err(err).Uint("examiner_id", examinerID).Msg("Failed to create exam")
		return nil, err
	}
	return examDetailResponse(exam)
}

func (s *examService) PublishExam(examinerID, examID uint) (*dto.ExamSummaryResponse, error) {
	exam, err := s.examRepo.Publish(examID, examinerID, time.Now())
	if err != nil {
		return nil, err
	}
	var resp dto.ExamSummaryResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *examService) ListMyExams(examinerID uint) ([]dto.ExamSummaryResponse, error) {
	exams, err := s.examRepo.FindByExaminer(examinerID)
	if err != nil {
		return nil, err
	}
	return examSummaries(exams)
}

func (s *examService) GetExamPreview(examinerID, examID uint) (*dto.ExamDetailResponse, error) {
	exam, err := s.examRepo.FindByIDForExaminer(examID, examinerID)
	if err != nil {
		return nil, err
	}
	return examDetailResponse(exam)
}

func (s *examService) ListAvailableExams() ([]dto.ExamSummaryResponse, error) {
	exams, err := s.examRepo.ListPublished()
	if err != nil {
		return nil, err
	}
	return examSummaries(exams)
}

func examSummaries(exams []model.Exam) ([]dto.ExamSummaryResponse, error) {
	summaries := make([]dto.ExamSummaryResponse, 0, len(exams))
	for _, exam := range exams {
		var summary dto.ExamSummaryResponse
		if err := copier.Copy(&summary, &exam); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func examDetailResponse(exam *model.Exam) (*dto.ExamDetailResponse, error) {
	var resp dto.ExamDetailResponse
	if err := copier.Copy(&resp.ExamSummaryResponse, exam); err != nil {
		return nil, err
	}
	for _, q := range exam.Questions {
		var qr dto.QuestionResponse
		if err := copier.Copy(&qr, &q); err != nil {
			return nil, err
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return &resp, nil
}
