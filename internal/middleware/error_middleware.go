package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP statuses and the standard
// error envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrStoryNotFound,
		apperrors.ErrEventNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUsernameAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Resource already exists"))

	case apperrors.Is(err, apperrors.ErrInvalidState, apperrors.ErrEventInPast):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidState, messageOf(err, "Operation not allowed in current state"))

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError maps request binding failures onto a 400 response
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
	errorDetail = errorDetail.WithDetails(err.Error())

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf prefers the wrapped error's own message when one was attached
func messageOf(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	if errors.Is(err, apperrors.ErrUserNotFound) ||
		errors.Is(err, apperrors.ErrProfileNotFound) ||
		errors.Is(err, apperrors.ErrStoryNotFound) ||
		errors.Is(err, apperrors.ErrEventNotFound) ||
		errors.Is(err, apperrors.ErrEventInPast) {
		return err.Error()
	}
	return fallback
}
