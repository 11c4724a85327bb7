package models

import "time"

const (
	// Server-side defaults substituted when the caller omits the fields.
	DefaultOrderStatus   = "Pending"
	DefaultPaymentStatus = "pending"
)

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderNumber     string    `gorm:"index" json:"order_number"` // caller-supplied, uniqueness NOT enforced
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	ShippingAddress string    `json:"shipping_address"`
	TotalAmount     float64   `json:"total_amount"`
	ShippingCost    float64   `json:"shipping_cost"`
	Tax             float64   `json:"tax"`
	Status          string    `gorm:"type:VARCHAR(30);default:'Pending'" json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	TrackingNumber  string    `json:"tracking_number"`
	Notes           string    `json:"notes"`
	OrderDate       time.Time `gorm:"autoCreateTime" json:"order_date"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Items are managed explicitly by the order controllers: written inside the
	// creation transaction, read back with a second query. Not a gorm association.
	Items []OrderItem `gorm:"-" json:"items,omitempty"`
}

// OrderItem carries a denormalized snapshot of the product at order time
// (name and unit price are historical record, never re-read from the catalog).
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index" json:"order_id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `gorm:"check:quantity >= 0" json:"quantity"`
	Price         float64 `json:"price"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
}
