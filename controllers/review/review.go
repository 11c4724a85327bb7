package reviewControllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	UserID    *uint  `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// guestEnrichment is the outcome of the optional guest-user attach step.
// It can be skipped but never fails the review itself.
type guestEnrichment struct {
	Attached bool
	UserID   *uint
}

// -------- Helpers --------

// attachGuestUser upserts a guest user row keyed by email (on conflict the name
// is refreshed). Any error is swallowed: the review proceeds with a nil user.
func attachGuestUser(db *gorm.DB, name, email string) guestEnrichment {
	guest := models.User{Name: name, Email: email, Role: "guest"}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"name": name}),
	}).Create(&guest).Error
	if err != nil {
		log.Printf("guest user upsert failed for %s: %v", email, err)
		return guestEnrichment{}
	}

	// Re-read by email: on conflict the insert does not report the existing ID.
	if err := db.Where("email = ?", email).First(&guest).Error; err != nil {
		log.Printf("guest user lookup failed for %s: %v", email, err)
		return guestEnrichment{}
	}

	return guestEnrichment{Attached: true, UserID: &guest.ID}
}

// recomputeProductRating writes AVG(rating) over all of the product's reviews
// back to the product row. This read-then-write runs outside the review-insert
// transaction: a review landing between the two statements is missed now and
// picked up by the next recompute.
func recomputeProductRating(db *gorm.DB, productID uint) error {
	var avg float64
	if err := db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", avg).Error
}

// -------- Handlers --------

// POST /api/reviews
func CreateReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.ProductID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}

		userID := req.UserID
		if userID == nil && req.Email != "" {
			if enrichment := attachGuestUser(db, req.Name, req.Email); enrichment.Attached {
				userID = enrichment.UserID
			}
		}

		review := models.Review{
			ProductID: req.ProductID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}

		if err := recomputeProductRating(db, req.ProductID); err != nil {
			// The review is already committed; the cached average stays stale
			// until the next recompute.
			log.Printf("rating recompute failed for product %d: %v", req.ProductID, err)
		}

		c.JSON(http.StatusCreated, review)
	}
}

// GET /api/reviews/product/:productId
func GetProductReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var reviews []models.Review
		if err := db.
			Where("product_id = ?", productID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		average := 0.0
		if len(reviews) > 0 {
			sum := 0
			for _, r := range reviews {
				sum += r.Rating
			}
			average = float64(sum) / float64(len(reviews))
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews": reviews,
			"average": average,
			"count":   len(reviews),
		})
	}
}

// POST /api/reviews/:reviewId/helpful
//
// The increment is a single UPDATE expression, atomic at the SQL level.
func MarkReviewHelpfulHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID := c.Param("reviewId")

		result := db.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", 1))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		var review models.Review
		if err := db.First(&review, "id = ?", reviewID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}
