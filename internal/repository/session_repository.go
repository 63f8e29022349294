package repository

import (
	"errors"

	"github.com/trnhan241/examguard/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// Supersede deactivates every active session of the session's user and
	// inserts the new one, atomically with respect to concurrent logins for
	// the same user.
	Supersede(session *model.Session) error
	FindActiveByUser(userID uint) (*model.Session, error)
	DeactivateByToken(token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Supersede(session *model.Session) error {
	// Single transaction so two racing logins serialize on the row locks:
	// exactly one active session survives, the later commit wins.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Session{}).
			Where("user_id = ? AND is_active = ?", session.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

// FindActiveByUser returns (nil, nil) when the user has no active session.
func (r *sessionRepository) FindActiveByUser(userID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeactivateByToken is idempotent: deactivating an unknown or already
// inactive token is a no-op success.
func (r *sessionRepository) DeactivateByToken(token string) error {
	return r.db.Model(&model.Session{}).
		Where("token = ?", token).
		Update("is_active", false).Error
}
