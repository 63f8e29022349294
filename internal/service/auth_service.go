package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest, fingerprint, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Logout(token string) error
	Profile(userID uint) (*dto.UserResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	sessions  SessionService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionService, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *authService) Login(req dto.LoginRequest, fingerprint, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}

	token, err := s.signToken(user)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("Failed to sign token")
		return nil, err
	}

	if _, err := s.sessions.Login(user.ID, token, fingerprint, ipAddress, userAgent); err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{Token: token}
	if err := copier.Copy(&resp.User, user); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *authService) Logout(token string) error {
	return s.sessions.Logout(token)
}

func (s *authService) Profile(userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *authService) signToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

// ParseToken validates a signed token and returns the identity claims.
// Shared with the auth middleware.
func ParseToken(tokenString, jwtSecret string) (userID uint, email, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", "", apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", "", apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	email, _ = claims["email"].(string)
	role, _ = claims["role"].(string)
	return uint(id), email, role, nil
}
