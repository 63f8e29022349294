package memory

import (
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByEmail[user.Email]; ok {
		return apperr.New(apperr.KindConflict, "email already registered")
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	s.usersByEmail[user.Email] = user.ID
	return nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	user := s.users[id]
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	return &user, nil
}
