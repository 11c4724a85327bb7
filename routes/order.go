package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/velvetcart/storefront-api/controllers/order"
	"github.com/velvetcart/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	{
		// Create order + items (transactional)
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// Paginated, status-filterable list
		orders.GET("", orderControllers.GetAllOrdersHandler(db))

		// Live order feed for the admin console
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Excel export (admin)
		orders.GET("/export-excel", middleware.ValidateAPIKey, orderControllers.ExportOrdersToExcel(db))

		// Order + its items
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))

		// Full field update
		orders.PUT("/:id", orderControllers.UpdateOrderHandler(db))

		// Status-only update
		orders.PATCH("/:id/status", orderControllers.UpdateOrderStatusHandler(db))

		// Delete order and its items
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}
}
