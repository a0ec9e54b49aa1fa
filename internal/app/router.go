// internal/app/router.go
package app

import (
	contractHandler "bizcare-service/internal/handlers/contract"
	customerHandler "bizcare-service/internal/handlers/customer"
	wsHandler "bizcare-service/internal/handlers/websocket"
	"bizcare-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	ContractHandler *contractHandler.ContractHandler
	CustomerHandler *customerHandler.CustomerHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware

	// Throttles the unauthenticated write and lookup routes. Nil disables it.
	Limiter   middleware.Limiter
	RateLimit int64
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	throttle := func(scope string) gin.HandlerFunc {
		if h.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(h.Limiter, scope, h.RateLimit, logger)
	}

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	ws := r.Group("/ws")
	ws.Use(h.AuthMiddleware.ManagerOnly()...)
	{
		ws.GET("/contracts", h.WSHandler.HandleConnection)
	}

	// ==================== Public Contract Routes ====================
	contracts := api.Group("/contracts")
	{
		contracts.POST("", throttle("submit"), h.ContractHandler.SubmitContract)
		contracts.GET("/search", h.ContractHandler.SearchByNumber) // ?customer_number=&contract_number=
		contracts.POST("/search", throttle("search"), h.ContractHandler.SearchByOwner)
		contracts.GET("/quote", h.ContractHandler.GetQuote) // ?contract_id=&customer_number=
		contracts.POST("/sign", throttle("sign"), h.ContractHandler.SignContract)
	}

	// ==================== Manager Routes ====================
	manager := api.Group("/manager")
	manager.Use(h.AuthMiddleware.ManagerOnly()...)
	{
		manager.GET("/contracts", h.ContractHandler.ListContracts) // ?status=&search=&limit=&offset=
		manager.POST("/contracts/quote", h.ContractHandler.SubmitQuote)
		manager.PUT("/contracts/:id/status", h.ContractHandler.ChangeStatus)
		manager.POST("/quotes", h.ContractHandler.SubmitItemQuote)

		customers := manager.Group("/customers")
		{
			customers.GET("", h.CustomerHandler.ListCustomers) // ?page=&limit=&search=&status=
			customers.GET("/:id", h.CustomerHandler.GetCustomer)
			customers.GET("/:id/contracts", h.ContractHandler.ListCustomerContracts)
			customers.GET("/:id/activities", h.CustomerHandler.ListActivities)
			customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		}
	}

	// ==================== ADMIN ROUTES ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
