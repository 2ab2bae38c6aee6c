package handlers

import (
	"errors"
	"net/http"

	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError: единственное место, где ошибки сервиса превращаются в HTTP-коды.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]dto.FieldError, 0, len(ve.Missing)+len(ve.Invalid))
		for _, f := range ve.Missing {
			fields = append(fields, dto.FieldError{Field: f, Message: "is required", Tag: "required"})
		}
		for _, f := range ve.Invalid {
			fields = append(fields, dto.FieldError{Field: f, Message: "has an unsupported value", Tag: "invalid"})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationError(ve.Error(), fields))
	case errors.Is(err, service.ErrTooManyImages):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), []dto.FieldError{{Field: "images", Message: err.Error(), Tag: "max"}}))
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	case errors.Is(err, service.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError(err.Error()))
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(err.Error()))
	}
}

func badBody(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}
