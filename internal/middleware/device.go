package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
	"github.com/trnhan241/examguard/internal/fingerprint"
	"github.com/trnhan241/examguard/internal/service"
)

// ValidateDevice recomputes the caller's device fingerprint and asks the
// session registry whether another device currently holds the user's
// session. Runs after RequireAuth.
func ValidateDevice(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Kind: "unauthorized", Error: "no token provided"})
			return
		}
		fp := fingerprint.Derive(c.Request.UserAgent(), c.ClientIP())
		if err := sessions.ValidateAccess(identity.UserID, fp); err != nil {
			if apperr.IsKind(err, apperr.KindDeviceConflict) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Kind: string(apperr.KindDeviceConflict), Error: err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Error: "device validation failed"})
			return
		}
		c.Next()
	}
}
