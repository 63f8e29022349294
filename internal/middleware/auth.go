package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/service"
)

const identityKey = "identity"

// Identity is the verified caller extracted from the bearer token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
	Token  string
}

// RequireAuth validates the bearer token and stores the caller identity in
// the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Error: "no token provided"})
			return
		}
		userID, email, role, err := service.ParseToken(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Error: "invalid token"})
			return
		}
		c.Set(identityKey, Identity{UserID: userID, Email: email, Role: role, Token: token})
		c.Next()
	}
}

// RequireStudent gates a route to student callers.
func RequireStudent() gin.HandlerFunc {
	return requireRole(model.RoleStudent)
}

// RequireExaminer gates a route to examiner callers.
func RequireExaminer() gin.HandlerFunc {
	return requireRole(model.RoleExaminer)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Kind: "forbidden", Error: "access denied: " + role + " role required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
