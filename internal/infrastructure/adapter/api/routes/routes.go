package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	bank usecase.BankUseCase,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	realm string,
) {
	router.GET("/health", handler.Health)

	accountRoutes := router.Group("/accounts")
	{
		accountRoutes.POST("", accountHandler.CreateAccount)
		accountRoutes.GET("/:username/availability", accountHandler.CheckAvailability)
	}

	// Routes acting on the authenticated user's own account
	ownRoutes := router.Group("/account", middleware.BasicAuth(bank, realm))
	{
		ownRoutes.GET("", accountHandler.GetAccount)
		ownRoutes.POST("/deposit", transactionHandler.Deposit)
		ownRoutes.POST("/withdraw", transactionHandler.Withdraw)
		ownRoutes.GET("/transactions", transactionHandler.GetTransactions)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}

// NewRouter builds a gin engine with middlewares and routes installed
func NewRouter(bank usecase.BankUseCase, logger coreport.Logger, timeProvider coreport.TimeProvider, realm string) *gin.Engine {
	router := gin.New()
	SetupMiddlewares(router, logger, timeProvider)
	SetupRoutes(
		router,
		bank,
		handler.NewAccountHandler(bank, logger),
		handler.NewTransactionHandler(bank, logger),
		realm,
	)
	return router
}
