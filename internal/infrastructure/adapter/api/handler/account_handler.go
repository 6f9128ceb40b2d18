package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	bank   usecase.BankUseCase
	logger coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(bank usecase.BankUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		bank:   bank,
		logger: logger,
	}
}

// CreateAccount handles the POST /accounts endpoint
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.bank.CreateAccount(c.Request.Context(), usecase.CreateAccountRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", "/account")
	c.JSON(http.StatusCreated, toAccountResponse(user))
}

// CheckAvailability handles the GET /accounts/:username/availability endpoint
func (h *AccountHandler) CheckAvailability(c *gin.Context) {
	username := c.Param("username")

	resp := dto.AvailabilityResponse{
		Username:  username,
		Available: true,
	}
	if err := h.bank.CheckUsername(c.Request.Context(), username); err != nil {
		resp.Available = false
		resp.Reason = domainerr.Message(err)
	}

	c.JSON(http.StatusOK, resp)
}

// GetAccount handles the GET /account endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, h.logger, domainerr.ErrInvalidCredentials)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(user))
}

// Health handles the GET /health endpoint
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func toAccountResponse(user *entity.User) dto.AccountResponse {
	return dto.AccountResponse{
		Username:         user.Username(),
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Balance:          user.GetBalance(),
		TransactionCount: user.TransactionCount(),
		CreatedAt:        user.CreatedAt,
	}
}
