package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/service"
)

func TestEvaluateCountsCorrectAnswersOnly(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 5)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	// Three right, two wrong; correct option is always 1.
	for i, q := range started.Questions {
		selected := 1
		if i >= 3 {
			selected = 2
		}
		require.NoError(t, e.responseSvc.RecordAnswer(studentID, started.AttemptID, dto.RecordAnswerRequest{
			QuestionID:     q.ID,
			SelectedOption: selected,
		}))
	}
	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	require.NoError(t, err)

	result, err := e.scoringSvc.Evaluate(started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 60.0, result.Percentage)
	assert.GreaterOrEqual(t, result.TimeTakenSeconds, 1)

	resp := service.ResultToDTO(result)
	assert.Equal(t, "60.00", resp.Percentage)
}

func TestEvaluateRoundsPercentage(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	require.NoError(t, e.responseSvc.RecordAnswer(studentID, started.AttemptID, dto.RecordAnswerRequest{
		QuestionID:     started.Questions[0].ID,
		SelectedOption: 1,
	}))
	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	require.NoError(t, err)

	result, err := e.scoringSvc.Evaluate(started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, result.Percentage)
	assert.Equal(t, "33.33", service.ResultToDTO(result).Percentage)
}

func TestEvaluateUnansweredAttempt(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)
	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerTimeout)
	require.NoError(t, err)

	result, err := e.scoringSvc.Evaluate(started.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, 1, result.TimeTakenSeconds)
}

func TestEvaluateRequiresSubmission(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	_, err = e.scoringSvc.Evaluate(started.AttemptID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestEvaluateRunsExactlyOnce(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)
	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	require.NoError(t, err)

	_, err = e.scoringSvc.Evaluate(started.AttemptID)
	require.NoError(t, err)

	_, err = e.scoringSvc.Evaluate(started.AttemptID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyEvaluated))
}

func TestEvaluateMeasuresElapsedWholeSeconds(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 2)

	start := time.Now().Add(-2 * time.Minute)
	attempt := &model.Attempt{
		StudentID: studentID,
		ExamID:    exam.ID,
		StartTime: start,
	}
	require.NoError(t, attempt.SetOrderIDs([]uint{exam.Questions[0].ID, exam.Questions[1].ID}))
	require.NoError(t, e.attempts.Create(attempt))
	require.NoError(t, e.attempts.MarkSubmitted(attempt.ID, start.Add(90*time.Second+500*time.Millisecond), false))

	result, err := e.scoringSvc.Evaluate(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, result.TimeTakenSeconds)
}

func TestMyResultsAndExamResult(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 2)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)
	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	require.NoError(t, err)
	_, err = e.scoringSvc.Evaluate(started.AttemptID)
	require.NoError(t, err)

	mine, err := e.scoringSvc.MyResults(studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, started.AttemptID, mine[0].AttemptID)

	byExam, err := e.scoringSvc.ExamResult(studentID, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, started.AttemptID, byExam.AttemptID)

	_, err = e.scoringSvc.ExamResult(studentID, exam.ID+100)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
