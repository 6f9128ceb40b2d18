package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/dto"
)

// StatusCode maps a domain error to its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrInsufficientFunds),
		errors.Is(err, domainerr.ErrOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrInvalidRequest),
		domainerr.IsAmountError(err),
		domainerr.IsAccountCreationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error body for err.
// Server errors are logged with their detail and reported generically.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := StatusCode(err)

	if status >= http.StatusInternalServerError {
		fields := domainerr.LogFields(err)
		fields["path"] = c.Request.URL.Path
		logger.Error("Request failed", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: domainerr.Message(err),
	})
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: "Invalid request format: " + err.Error(),
	})
}
