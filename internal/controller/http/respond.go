package http

import (
	"errors"
	"net/http"

	"adboard/internal/usecase"
	"adboard/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// actorFrom builds the explicit actor from what AuthMiddleware stored.
func actorFrom(c *gin.Context) usecase.Actor {
	return usecase.Actor{
		UserID:  c.GetUint("user_id"),
		IsAdmin: c.GetBool("is_admin"),
	}
}

// respondError maps the taxonomy to HTTP. Every error carries a stable
// machine-readable code next to the human-readable message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDependency):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.Code(err)})
}
