package service_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/service"
)

func TestStartReturnsPermutationAndPersistsIt(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 10)

	resp, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)
	require.Len(t, resp.Questions, 10)

	want := make(map[uint]bool, len(exam.Questions))
	for _, q := range exam.Questions {
		want[q.ID] = true
	}
	served := make([]uint, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		assert.True(t, want[q.ID], "question %d not part of the exam", q.ID)
		served = append(served, q.ID)
	}

	attempt, err := e.attempts.FindByID(resp.AttemptID)
	require.NoError(t, err)
	persisted, err := attempt.OrderIDs()
	require.NoError(t, err)
	assert.Equal(t, served, persisted)
}

func TestStartUnpublishedExamFails(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.createExam(t, examinerID, 3)

	_, err := e.attemptSvc.Start(studentID, exam.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSecondStartConflicts(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)

	_, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	_, err = e.attemptSvc.Start(studentID, exam.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestConcurrentStartsCreateOneAttempt(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.attemptSvc.Start(studentID, exam.ID)
		}(i)
	}
	wg.Wait()

	started := 0
	for _, err := range errs {
		if err == nil {
			started++
		} else {
			assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		}
	}
	assert.Equal(t, 1, started)
}

func TestCloseIsOneWay(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	closed, err := e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	require.NoError(t, err)
	assert.True(t, closed.IsSubmitted)
	assert.False(t, closed.IsAutoSubmitted)
	require.NotNil(t, closed.SubmittedAt)

	_, err = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadySubmitted))
}

func TestConcurrentClosesCommitOnce(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerManual)
		}(i)
	}
	wg.Wait()

	submitted := 0
	for _, err := range errs {
		if err == nil {
			submitted++
		} else {
			assert.True(t, apperr.IsKind(err, apperr.KindAlreadySubmitted))
		}
	}
	assert.Equal(t, 1, submitted)
}

func TestCloseByNonOwnerLooksLikeMissing(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	ownerID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	intruderID := e.register(t, "Mallory", "mallory@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(ownerID, exam.ID)
	require.NoError(t, err)

	_, err = e.attemptSvc.Close(intruderID, started.AttemptID, service.TriggerManual)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestTimeoutCloseMarksAutoSubmitted(t *testing.T) {
	e := newEnv()
	examinerID := e.register(t, "Alice", "alice@example.com", model.RoleExaminer)
	studentID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	exam := e.publishedExam(t, examinerID, 3)
	started, err := e.attemptSvc.Start(studentID, exam.ID)
	require.NoError(t, err)

	closed, err := e.attemptSvc.Close(studentID, started.AttemptID, service.TriggerTimeout)
	require.NoError(t, err)
	assert.True(t, closed.IsSubmitted)
	assert.True(t, closed.IsAutoSubmitted)
}
