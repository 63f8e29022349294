package memory

import (
	"sort"

	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type resultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) repository.ResultRepository {
	return &resultRepository{store: store}
}

func (r *resultRepository) Create(result *model.Result) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resultByAttempt[result.AttemptID]; ok {
		return apperr.New(apperr.KindAlreadyEvaluated, "attempt already evaluated")
	}
	s.nextResultID++
	result.ID = s.nextResultID
	s.results[result.ID] = *result
	s.resultByAttempt[result.AttemptID] = result.ID
	return nil
}

func (r *resultRepository) FindByAttempt(attemptID uint) (*model.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.resultByAttempt[attemptID]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "result not found")
	}
	result := s.results[id]
	return &result, nil
}

func (r *resultRepository) FindByStudent(studentID uint) ([]model.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []model.Result
	for _, result := range s.results {
		if result.StudentID == studentID {
			results = append(results, result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].EvaluatedAt.After(results[j].EvaluatedAt) })
	return results, nil
}

func (r *resultRepository) FindByStudentAndExam(studentID, examID uint) (*model.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, result := range s.results {
		if result.StudentID == studentID && result.ExamID == examID {
			found := result
			return &found, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "result not found")
}

func (r *resultRepository) ListByExam(examID uint) ([]model.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []model.Result
	for _, result := range s.results {
		if result.ExamID == examID {
			results = append(results, result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].EvaluatedAt.After(results[j].EvaluatedAt) })
	return results, nil
}

func (r *resultRepository) RankByExam(examID uint, limit int) ([]repository.LeaderboardRow, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var ranked []model.Result
	for _, result := range s.results {
		if result.ExamID == examID {
			ranked = append(ranked, result)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.TimeTakenSeconds != b.TimeTakenSeconds {
			return a.TimeTakenSeconds < b.TimeTakenSeconds
		}
		if !a.EvaluatedAt.Equal(b.EvaluatedAt) {
			return a.EvaluatedAt.Before(b.EvaluatedAt)
		}
		return a.ID < b.ID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rows := make([]repository.LeaderboardRow, 0, len(ranked))
	for _, result := range ranked {
		row := repository.LeaderboardRow{
			StudentID:        result.StudentID,
			Score:            result.Score,
			Percentage:       result.Percentage,
			TimeTakenSeconds: result.TimeTakenSeconds,
			EvaluatedAt:      result.EvaluatedAt,
		}
		if user, ok := s.users[result.StudentID]; ok {
			row.StudentName = user.Name
			row.StudentEmail = user.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}
