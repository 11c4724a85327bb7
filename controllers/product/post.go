package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Images      []string `json:"images"`
}

// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			Category:    req.Category,
			Colors:      models.StringList(req.Colors),
			Sizes:       models.StringList(req.Sizes),
			Images:      models.StringList(req.Images),
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
