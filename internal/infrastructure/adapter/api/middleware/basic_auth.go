package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/dto"
)

// userContextKey is the gin context key holding the authenticated *entity.User
const userContextKey = "bank.user"

// BasicAuth authenticates each request with HTTP basic credentials checked by the bank
func BasicAuth(bank usecase.BankUseCase, realm string) gin.HandlerFunc {
	challenge := `Basic realm="` + realm + `", charset="UTF-8"`

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeInvalidCredentials,
				Message: "Authorization required",
			})
			return
		}

		user, err := bank.Login(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: domainerr.ErrInvalidCredentials.Error(),
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by BasicAuth, or nil outside protected routes
func CurrentUser(c *gin.Context) *entity.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entity.User)
	return user
}
