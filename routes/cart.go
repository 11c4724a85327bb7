package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/cart"
	cartControllers "github.com/velvetcart/storefront-api/controllers/cart"
)

func SetupCartRoutes(api *gin.RouterGroup, store cart.Store) {
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(store))
		cartGroup.POST("", cartControllers.ApplyCartAction(store))
		cartGroup.DELETE("", cartControllers.ClearCart(store))
	}
}
