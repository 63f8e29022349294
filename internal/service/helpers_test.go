package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/repository"
	"github.com/trnhan241/examguard/internal/repository/memory"
	"github.com/trnhan241/examguard/internal/service"
)

// env wires every service onto one shared in-memory store, the same shape
// the fx graph builds in production.
type env struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	exams     repository.ExamRepository
	attempts  repository.AttemptRepository
	responses repository.ResponseRepository
	results   repository.ResultRepository

	sessionSvc     service.SessionService
	authSvc        service.AuthService
	examSvc        service.ExamService
	attemptSvc     service.AttemptService
	responseSvc    service.ResponseService
	scoringSvc     service.ScoringService
	leaderboardSvc service.LeaderboardService
}

func newEnv() *env {
	store := memory.NewStore()
	e := &env{
		users:     memory.NewUserRepository(store),
		sessions:  memory.NewSessionRepository(store),
		exams:     memory.NewExamRepository(store),
		attempts:  memory.NewAttemptRepository(store),
		responses: memory.NewResponseRepository(store),
		results:   memory.NewResultRepository(store),
	}
	e.sessionSvc = service.NewSessionService(e.sessions, time.Hour)
	e.authSvc = service.NewAuthService(e.users, e.sessionSvc, "test-secret", time.Hour)
	e.examSvc = service.NewExamService(e.exams)
	e.attemptSvc = service.NewAttemptService(e.exams, e.attempts)
	e.responseSvc = service.NewResponseService(e.attempts, e.exams, e.responses)
	e.scoringSvc = service.NewScoringService(e.attempts, e.responses, e.results)
	e.leaderboardSvc = service.NewLeaderboardService(e.exams, e.results)
	return e
}

func (e *env) register(t *testing.T, name, email, role string) uint {
	t.Helper()
	user, err := e.authSvc.Register(dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "correct-horse",
		Role:     role,
	})
	require.NoError(t, err)
	return user.ID
}

// createExam builds an exam whose every question has correct option 1.
func (e *env) createExam(t *testing.T, examinerID uint, questions int) *dto.ExamDetailResponse {
	t.Helper()
	req := dto.CreateExamRequest{
		Title:           "Networks Midterm",
		Topic:           "networking",
		DifficultyLevel: "medium",
		DurationMinutes: 30,
	}
	for i := 1; i <= questions; i++ {
		req.Questions = append(req.Questions, dto.QuestionCreateRequest{
			QuestionText:  fmt.Sprintf("Question %d", i),
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			OptionD:       "D",
			CorrectOption: 1,
			QuestionOrder: i,
		})
	}
	exam, err := e.examSvc.CreateExam(examinerID, req)
	require.NoError(t, err)
	return exam
}

func (e *env) publishedExam(t *testing.T, examinerID uint, questions int) *dto.ExamDetailResponse {
	t.Helper()
	exam := e.createExam(t, examinerID, questions)
	_, err := e.examSvc.PublishExam(examinerID, exam.ID)
	require.NoError(t, err)
	return exam
}
