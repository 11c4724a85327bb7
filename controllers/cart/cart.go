package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvetcart/storefront-api/cart"
)

// Guest carts live in the Store keyed by guest_id; the reducer owns all cart
// semantics, these handlers only load, apply and persist.

// GET /api/cart?guest_id=
func GetCart(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.Query("guest_id")
		if guestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		state, err := store.Load(c.Request.Context(), guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": state, "subtotal": cart.Subtotal(state)})
	}
}

// POST /api/cart?guest_id=
func ApplyCartAction(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.Query("guest_id")
		if guestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		var action cart.Action
		if err := c.ShouldBindJSON(&action); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action: " + err.Error()})
			return
		}

		state, err := store.Load(c.Request.Context(), guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		next, err := cart.Reduce(state, action)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.Save(c.Request.Context(), guestID, next); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": next, "subtotal": cart.Subtotal(next)})
	}
}

// DELETE /api/cart?guest_id=
func ClearCart(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.Query("guest_id")
		if guestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		if err := store.Delete(c.Request.Context(), guestID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
