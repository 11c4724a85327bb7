package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

// CreateOrderRequest carries the full order payload. No field is structurally
// required: an absent or empty items list is a legal zero-line order.
type CreateOrderRequest struct {
	OrderNumber     string           `json:"order_number"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email"`
	CustomerPhone   string           `json:"customer_phone"`
	ShippingAddress string           `json:"shipping_address"`
	TotalAmount     float64          `json:"total_amount"`
	ShippingCost    float64          `json:"shipping_cost"`
	Tax             float64          `json:"tax"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentStatus   string           `json:"payment_status"`
	TrackingNumber  string           `json:"tracking_number"`
	Notes           string           `json:"notes"`
	Items           []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
}

type UpdateOrderRequest struct {
	OrderNumber     *string  `json:"order_number"`
	CustomerName    *string  `json:"customer_name"`
	CustomerEmail   *string  `json:"customer_email"`
	CustomerPhone   *string  `json:"customer_phone"`
	ShippingAddress *string  `json:"shipping_address"`
	TotalAmount     *float64 `json:"total_amount"`
	ShippingCost    *float64 `json:"shipping_cost"`
	Tax             *float64 `json:"tax"`
	Status          *string  `json:"status"`
	PaymentMethod   *string  `json:"payment_method"`
	PaymentStatus   *string  `json:"payment_status"`
	TrackingNumber  *string  `json:"tracking_number"`
	Notes           *string  `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// generateOrderNumber produces a fallback reference when the caller supplies none.
// Supplied order numbers are stored verbatim and never checked for uniqueness.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// parsePagination applies the 1-indexed page / limit defaults (page=1, limit=10).
func parsePagination(pageStr, limitStr string) (int, int, error) {
	page, limit := 1, 10

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, errors.New("invalid page")
		}
		page = p
	}
	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, errors.New("invalid limit")
		}
		limit = l
	}

	return page, limit, nil
}

// -------- Core Logic --------

// CreateOrder persists an order and its line items as one atomic unit. Items are
// inserted sequentially in input order inside a single transaction; any failure
// rolls back the order row and every item inserted so far. The transaction
// closure commits or rolls back and returns the connection to the pool in all
// cases, including a failed rollback.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (models.Order, error) {
	order := models.Order{
		OrderNumber:     req.OrderNumber,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		ShippingCost:    req.ShippingCost,
		Tax:             req.Tax,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   req.PaymentStatus,
		TrackingNumber:  req.TrackingNumber,
		Notes:           req.Notes,
	}
	if order.Status == "" {
		order.Status = models.DefaultOrderStatus
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.DefaultPaymentStatus
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range req.Items {
			item := models.OrderItem{
				OrderID:       order.ID,
				ProductID:     it.ProductID,
				ProductName:   it.ProductName,
				Quantity:      it.Quantity,
				Price:         it.Price,
				SelectedColor: it.SelectedColor,
				SelectedSize:  it.SelectedSize,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	// The response carries the order row only, never the items.
	order.Items = nil
	return order, nil
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		order, err := CreateOrder(db, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		broadcastOrderEvent("order_created", order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders?status=&page=&limit=
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePagination(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		query := db.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var orders []models.Order
		if err := query.
			Order("order_date DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		})
	}
}

// GET /api/orders/:id
//
// Two sequential queries, not a join. The pair is not a consistent snapshot,
// which is fine here since orders are rarely mutated after creation.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var items []models.OrderItem
		if err := db.
			Where("order_id = ?", order.ID).
			Order("id ASC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
			return
		}
		order.Items = items

		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.OrderNumber != nil {
			updates["order_number"] = *req.OrderNumber
		}
		if req.CustomerName != nil {
			updates["customer_name"] = *req.CustomerName
		}
		if req.CustomerEmail != nil {
			updates["customer_email"] = *req.CustomerEmail
		}
		if req.CustomerPhone != nil {
			updates["customer_phone"] = *req.CustomerPhone
		}
		if req.ShippingAddress != nil {
			updates["shipping_address"] = *req.ShippingAddress
		}
		if req.TotalAmount != nil {
			updates["total_amount"] = *req.TotalAmount
		}
		if req.ShippingCost != nil {
			updates["shipping_cost"] = *req.ShippingCost
		}
		if req.Tax != nil {
			updates["tax"] = *req.Tax
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.PaymentMethod != nil {
			updates["payment_method"] = *req.PaymentMethod
		}
		if req.PaymentStatus != nil {
			updates["payment_status"] = *req.PaymentStatus
		}
		if req.TrackingNumber != nil {
			updates["tracking_number"] = *req.TrackingNumber
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}

		if len(updates) > 0 {
			if err := db.Model(&order).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
		}

		c.JSON(http.StatusOK, order)
	}
}

// PATCH /api/orders/:id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		broadcastOrderEvent("order_status_updated", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}

// DELETE /api/orders/:id
//
// Items are removed in the same transaction; the schema has no cascade.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
