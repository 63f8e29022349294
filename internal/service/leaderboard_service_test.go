package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
)

func (e *env) seedResult(t *testing.T, studentID, examID uint, score int, percentage float64, seconds int, evaluatedAt time.Time) {
	t.Helper()
	require.NoError(t, e.results.Create(&model.Result{
		AttemptID:        studentID*1000 + examID,
		StudentID:        studentID,
		ExamID:           examID,
		Score:            score,
		TotalQuestions:   10,
		Percentage:       percentage,
		TimeTakenSeconds: seconds,
		EvaluatedAt:      evaluatedAt,
	}))
}

func TestRankBreaksTiesByTimeThenEvaluation(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	fast := e.register(t, "Fast", "fast@example.com", model.RoleStudent)
	slow := e.register(t, "Slow", "slow@example.com", model.RoleStudent)
	top := e.register(t, "Top", "top@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 10)

	now := time.Now()
	e.seedResult(t, slow, exam.ID, 8, 80, 120, now)
	e.seedResult(t, fast, exam.ID, 8, 80, 90, now)
	e.seedResult(t, top, exam.ID, 9, 90, 150, now)

	entries, err := e.leaderboardSvc.Rank(exam.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Top", entries[0].StudentName)
	assert.Equal(t, "90.00", entries[0].Percentage)
	assert.Equal(t, 1, entries[0].Rank)

	// Equal percentage: the faster finish ranks higher.
	assert.Equal(t, "Fast", entries[1].StudentName)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Slow", entries[2].StudentName)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankAppliesDefaultLimit(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	exam := e.publishedExam(t, examinerID, 10)

	now := time.Now()
	for i := 0; i < 12; i++ {
		studentID := e.register(t, fmt.Sprintf("Student %d", i), fmt.Sprintf("student%d@example.com", i), model.RoleStudent)
		e.seedResult(t, studentID, exam.ID, i, float64(i*5), 100+i, now.Add(time.Duration(i)*time.Second))
	}

	entries, err := e.leaderboardSvc.Rank(exam.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestSummarizeEmptyExam(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	exam := e.publishedExam(t, examinerID, 5)

	stats, err := e.leaderboardSvc.Summarize(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalAttempts)
	assert.Equal(t, "0.00", stats.AverageScore)
	assert.Equal(t, "0.00", stats.AveragePercentage)
}

func TestSummarizeAverages(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	a := e.register(t, "A", "a@example.com", model.RoleStudent)
	b := e.register(t, "B", "b@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 10)

	now := time.Now()
	e.seedResult(t, a, exam.ID, 3, 60, 100, now)
	e.seedResult(t, b, exam.ID, 4, 80, 110, now)

	stats, err := e.leaderboardSvc.Summarize(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, "3.50", stats.AverageScore)
	assert.Equal(t, "70.00", stats.AveragePercentage)
}

func TestAnalyticsIsOwnerOnly(t *testing.T) {
	e := newEnv()
	ownerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	otherID := e.register(t, "Eve", "eve@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, ownerID, 10)
	e.seedResult(t, studentID, exam.ID, 7, 70, 95, time.Now())

	_, err := e.leaderboardSvc.Analytics(otherID, exam.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	analytics, err := e.leaderboardSvc.Analytics(ownerID, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, exam.ID, analytics.Exam.ID)
	assert.Equal(t, 1, analytics.Statistics.TotalAttempts)
	require.Len(t, analytics.Results, 1)
	assert.Equal(t, "70.00", analytics.Results[0].Percentage)
}
