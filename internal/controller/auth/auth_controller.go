package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/controller"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/fingerprint"
	"github.com/trnhan241/examguard/internal/middleware"
	"github.com/trnhan241/examguard/internal/service"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	user, err := ctrl.authSvc.Register(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login, superseding any session on another device
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	fp := fingerprint.Derive(c.Request.UserAgent(), c.ClientIP())
	resp, err := ctrl.authSvc.Login(req, fp, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Str("email", req.Email).Msg("User logged in")
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout, deactivating the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Error: "no token provided"})
		return
	}
	if err := ctrl.authSvc.Logout(identity.Token); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/profile [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Error: "no token provided"})
		return
	}
	user, err := ctrl.authSvc.Profile(identity.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
