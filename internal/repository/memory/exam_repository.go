package memory

import (
	"sort"
	"time"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type examRepository struct {
	store *Store
}

func NewExamRepository(store *Store) repository.ExamRepository {
	return &examRepository{store: store}
}

func (r *examRepository) Create(exam *model.Exam) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextExamID++
	exam.ID = s.nextExamID
	for i := range exam.Questions {
		s.nextQuestionID++
		exam.Questions[i].ID = s.nextQuestionID
		exam.Questions[i].ExamID = exam.ID
		s.questions[exam.Questions[i].ID] = exam.Questions[i]
	}
	stored := *exam
	stored.Questions = nil
	s.exams[exam.ID] = stored
	return nil
}

func (r *examRepository) Publish(examID, examinerID uint, at time.Time) (*model.Exam, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[examID]
	if !ok || exam.ExaminerID != examinerID {
		return nil, apperr.New(apperr.KindNotFound, "exam not found")
	}
	exam.IsPublished = true
	exam.PublishedAt = &at
	s.exams[examID] = exam
	found := exam
	return &found, nil
}

func (r *examRepository) FindByExaminer(examinerID uint) ([]model.Exam, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var exams []model.Exam
	for _, exam := range s.exams {
		if exam.ExaminerID == examinerID {
			exams = append(exams, exam)
		}
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].CreatedAt.After(exams[j].CreatedAt) })
	return exams, nil
}

func (r *examRepository) FindByIDForExaminer(examID, examinerID uint) (*model.Exam, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[examID]
	if !ok || exam.ExaminerID != examinerID {
		return nil, apperr.New(apperr.KindNotFound, "exam not found")
	}
	found := exam
	found.Questions = r.questionsForLocked(examID)
	return &found, nil
}

func (r *examRepository) ListPublished() ([]model.Exam, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var exams []model.Exam
	for _, exam := range s.exams {
		if exam.IsPublished {
			exams = append(exams, exam)
		}
	}
	sort.Slice(exams, func(i, j int) bool {
		return exams[i].PublishedAt != nil && exams[j].PublishedAt != nil &&
			exams[i].PublishedAt.After(*exams[j].PublishedAt)
	})
	return exams, nil
}

func (r *examRepository) FindPublishedWithQuestions(examID uint) (*model.Exam, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[examID]
	if !ok || !exam.IsPublished {
		return nil, apperr.New(apperr.KindNotFound, "exam not found or not available")
	}
	found := exam
	found.Questions = r.questionsForLocked(examID)
	return &found, nil
}

func (r *examRepository) FindQuestion(questionID uint) (*model.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[questionID]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "question not found")
	}
	return &question, nil
}

// questionsForLocked requires the store mutex to be held.
func (r *examRepository) questionsForLocked(examID uint) []model.Question {
	var questions []model.Question
	for _, q := range r.store.questions {
		if q.ExamID == examID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].QuestionOrder < questions[j].QuestionOrder })
	return questions
}
