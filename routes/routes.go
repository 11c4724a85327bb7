package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/cart"
	"github.com/velvetcart/storefront-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires every /api route group.
// cartStore may be nil when no redis address is configured; the cart endpoints
// are simply not registered then.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, cartStore cart.Store) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg)
	SetupProductRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupReviewRoutes(api, db)

	if cartStore != nil {
		SetupCartRoutes(api, cartStore)
	}
}
