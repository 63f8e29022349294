package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
)

// SessionService is the single-device session registry. At most one active
// session exists per user; a new login forcibly supersedes the previous one.
type SessionService interface {
	// Login deactivates any active session for the user and binds a new one
	// to the given device fingerprint. Forced takeover, no negotiation.
	Login(userID uint, token, fingerprint, ipAddress, userAgent string) (*model.Session, error)
	// ValidateAccess denies with DeviceConflict when another device's
	// session is active for the user. Having no session at all is not a
	// denial; this gate enforces "single concurrent device", not "must log
	// in every request".
	ValidateAccess(userID uint, fingerprint string) error
	// Logout deactivates the session holding the token. Idempotent.
	Logout(token string) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	ttl         time.Duration
}

func NewSessionService(sessionRepo repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{sessionRepo: sessionRepo, ttl: ttl}
}

func (s *sessionService) Login(userID uint, token, fingerprint, ipAddress, userAgent string) (*model.Session, error) {
	session := &model.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		Token:       token,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		IsActive:    true,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	if err := s.sessionRepo.Supersede(session); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("Failed to supersede session on login")
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ValidateAccess(userID uint, fingerprint string) error {
	active, err := s.sessionRepo.FindActiveByUser(userID)
	if err != nil {
		return err
	}
	if active == nil || time.Now().After(active.ExpiresAt) {
		return nil
	}
	if active.Fingerprint != fingerprint {
		return apperr.New(apperr.KindDeviceConflict,
			"you are already logged in from another device, please logout from that device first")
	}
	return nil
}

func (s *sessionService) Logout(token string) error {
	return s.sessionRepo.DeactivateByToken(token)
}
