package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
)

// DELETE /api/products/:id (admin)
//
// Past order items keep their product snapshot, so deleting a product leaves
// dangling product_id references behind. That is by contract, not an error.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
