package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/trnhan241/examguard/internal/apperr"
	"github.com/trnhan241/examguard/internal/dto"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:         http.StatusNotFound,
	apperr.KindConflict:         http.StatusConflict,
	apperr.KindAttemptClosed:    http.StatusConflict,
	apperr.KindAlreadySubmitted: http.StatusConflict,
	apperr.KindAlreadyEvaluated: http.StatusConflict,
	apperr.KindDeviceConflict:   http.StatusForbidden,
	apperr.KindUnauthorized:     http.StatusUnauthorized,
	apperr.KindForbidden:        http.StatusForbidden,
	apperr.KindValidation:       http.StatusBadRequest,
	apperr.KindInternal:         http.StatusInternalServerError,
}

// RespondError maps an application error to its HTTP status and structured
// payload. Unclassified errors are logged and surfaced as a generic
// internal error so storage details never leak to callers.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if kind == apperr.KindInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		message = "internal server error"
	}
	c.JSON(status, dto.ErrorResponse{Kind: string(kind), Error: message})
}

// RespondBindError reports a request-body validation failure.
func RespondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: string(apperr.KindValidation), Error: err.Error()})
}
