package memory

import (
	"sort"

	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type responseRepository struct {
	store *Store
}

func NewResponseRepository(store *Store) repository.ResponseRepository {
	return &responseRepository{store: store}
}

func (r *responseRepository) Upsert(response *model.Response) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := responseKey{attemptID: response.AttemptID, questionID: response.QuestionID}
	if existing, ok := s.responses[key]; ok {
		response.ID = existing.ID
	} else {
		s.nextResponseID++
		response.ID = s.nextResponseID
	}
	s.responses[key] = *response
	return nil
}

func (r *responseRepository) ListByAttempt(attemptID uint) ([]model.Response, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var responses []model.Response
	for _, resp := range s.responses {
		if resp.AttemptID == attemptID {
			if question, ok := s.questions[resp.QuestionID]; ok {
				resp.Question = question
			}
			responses = append(responses, resp)
		}
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].AnsweredAt.Before(responses[j].AnsweredAt) })
	return responses, nil
}

func (r *responseRepository) CountCorrect(attemptID uint) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, resp := range s.responses {
		if resp.AttemptID == attemptID && resp.IsCorrect {
			count++
		}
	}
	return count, nil
}
