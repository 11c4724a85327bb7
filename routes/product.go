package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/velvetcart/storefront-api/controllers/product"
	"github.com/velvetcart/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/export-excel", middleware.ValidateAPIKey, productcontroller.ExportProductsToExcel(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("", middleware.ValidateAPIKey, productcontroller.CreateProduct(db))
		products.PUT("/:id", middleware.ValidateAPIKey, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", middleware.ValidateAPIKey, productcontroller.DeleteProduct(db))
	}
}
