package routes

import (
	"github.com/gin-gonic/gin"
	reviewControllers "github.com/velvetcart/storefront-api/controllers/review"
	"gorm.io/gorm"
)

func SetupReviewRoutes(api *gin.RouterGroup, db *gorm.DB) {
	reviews := api.Group("/reviews")
	{
		reviews.POST("", reviewControllers.CreateReviewHandler(db))
		reviews.GET("/product/:productId", reviewControllers.GetProductReviewsHandler(db))
		reviews.POST("/:reviewId/helpful", reviewControllers.MarkReviewHelpfulHandler(db))
	}
}
