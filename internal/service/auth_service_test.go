package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/service"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e := newEnv()
	e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	_, err := e.authSvc.Register(dto.RegisterRequest{
		Name:     "Impostor",
		Email:    "bob@example.com",
		Password: "correct-horse",
		Role:     model.RoleStudent,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newEnv()
	e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	_, err := e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "wrong"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// Unknown emails fail identically to wrong passwords.
	_, err = e.authSvc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestLoginIssuesTokenAndBindsDevice(t *testing.T) {
	e := newEnv()
	userID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	resp, err := e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "correct-horse"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)

	parsedID, email, role, err := service.ParseToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, "bob@example.com", email)
	assert.Equal(t, model.RoleStudent, role)

	assert.NoError(t, e.sessionSvc.ValidateAccess(userID, "fp-a"))
	err = e.sessionSvc.ValidateAccess(userID, "fp-b")
	assert.True(t, apperr.IsKind(err, apperr.KindDeviceConflict))
}

func TestLoginFromSecondDeviceTakesOver(t *testing.T) {
	e := newEnv()
	userID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	_, err := e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "correct-horse"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)
	_, err = e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "correct-horse"}, "fp-b", "198.51.100.4", "Mozilla/5.0")
	require.NoError(t, err)

	assert.NoError(t, e.sessionSvc.ValidateAccess(userID, "fp-b"))
	err = e.sessionSvc.ValidateAccess(userID, "fp-a")
	assert.True(t, apperr.IsKind(err, apperr.KindDeviceConflict))
}

func TestLogoutReleasesSession(t *testing.T) {
	e := newEnv()
	userID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	resp, err := e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "correct-horse"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)
	require.NoError(t, e.authSvc.Logout(resp.Token))

	assert.NoError(t, e.sessionSvc.ValidateAccess(userID, "fp-b"))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	e := newEnv()
	e.register(t, "Bob", "bob@example.com", model.RoleStudent)
	resp, err := e.authSvc.Login(dto.LoginRequest{Email: "bob@example.com", Password: "correct-horse"}, "fp-a", "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)

	_, _, _, err = service.ParseToken(resp.Token, "other-secret")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestProfileReturnsUser(t *testing.T) {
	e := newEnv()
	userID := e.register(t, "Bob", "bob@example.com", model.RoleStudent)

	profile, err := e.authSvc.Profile(userID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", profile.Email)

	_, err = e.authSvc.Profile(userID + 1)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
