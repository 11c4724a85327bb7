package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/auth"
	"github.com/velvetcart/storefront-api/config"
	"github.com/velvetcart/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db, cfg.JWTSecret, cfg.TokenTTL))
		authGroup.GET("/me", middleware.ValidateToken(cfg.JWTSecret), auth.Me(db))
	}
}
