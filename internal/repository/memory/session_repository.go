package memory

import (
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type sessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Supersede(session *model.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.sessions {
		if existing.UserID == session.UserID && existing.IsActive {
			existing.IsActive = false
			s.sessions[id] = existing
		}
	}
	s.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepository) FindActiveByUser(userID uint) (*model.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.UserID == userID && session.IsActive {
			found := session
			return &found, nil
		}
	}
	return nil, nil
}

func (r *sessionRepository) DeactivateByToken(token string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.Token == token {
			session.IsActive = false
			s.sessions[id] = session
		}
	}
	return nil
}
