package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	orders := r.Group("/api/orders")
	orders.POST("", CreateOrderHandler(db))
	orders.GET("", GetAllOrdersHandler(db))
	orders.GET("/ws", OrderWebSocketHandler)
	orders.GET("/:id", GetOrderByIDHandler(db))
	orders.PUT("/:id", UpdateOrderHandler(db))
	orders.PATCH("/:id/status", UpdateOrderStatusHandler(db))
	orders.DELETE("/:id", DeleteOrderHandler(db))
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/api/orders", gin.H{
		"order_number":  "ORD-1001",
		"customer_name": "Ayla Demir",
		"total_amount":  2200.0,
		"items": []gin.H{
			{"product_id": 1, "product_name": "Desk Lamp", "quantity": 2, "price": 500},
			{"product_id": 2, "product_name": "Office Chair", "quantity": 1, "price": 1200},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ORD-1001", created.OrderNumber)
	// total_amount is stored verbatim, never recomputed from the items.
	assert.Equal(t, 2200.0, created.TotalAmount)
	// The creation response carries the order row only.
	assert.Empty(t, created.Items)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", created.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 2, itemCount)
}

func TestCreateOrderAtomicity(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	const n = 3
	// Force the k-th item insert to fail (quantity check constraint) and
	// verify full rollback for every position.
	for k := 0; k < n; k++ {
		items := make([]gin.H, n)
		for i := range items {
			q := 1
			if i == k {
				q = -1
			}
			items[i] = gin.H{"product_id": i + 1, "product_name": fmt.Sprintf("Item %d", i), "quantity": q, "price": 10}
		}

		w := postJSON(r, "/api/orders", gin.H{"customer_name": "Rollback Case", "items": items})
		require.Equal(t, http.StatusBadRequest, w.Code, "failing item at position %d", k)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "message")

		var orderCount, itemCount int64
		require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
		require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
		assert.Zero(t, orderCount, "order row leaked for k=%d", k)
		assert.Zero(t, itemCount, "item rows leaked for k=%d", k)
	}
}

func TestCreateOrderDefaultSubstitution(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/api/orders", gin.H{"customer_name": "No Status"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "pending", created.PaymentStatus)
	// A fallback order number is generated when the caller supplies none.
	assert.NotEmpty(t, created.OrderNumber)
}

func TestCreateOrderZeroItems(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/api/orders", gin.H{"customer_name": "Empty Order"})
	require.Equal(t, http.StatusCreated, w.Code)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, orderCount)
	assert.Zero(t, itemCount)
}

func TestDuplicateOrderNumberAccepted(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	// order_number uniqueness is deliberately not enforced.
	for i := 0; i < 2; i++ {
		w := postJSON(r, "/api/orders", gin.H{"order_number": "DUP-1"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("order_number = ?", "DUP-1").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGetAllOrdersPagination(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	const total = 23
	for i := 0; i < total; i++ {
		require.NoError(t, db.Create(&models.Order{
			OrderNumber: fmt.Sprintf("ORD-%03d", i),
			Status:      "Pending",
		}).Error)
	}

	cases := []struct {
		page, limit, wantRows, wantPages int
	}{
		{1, 10, 10, 3},
		{2, 10, 10, 3},
		{3, 10, 3, 3},
		{4, 10, 0, 3},
		{1, 23, 23, 1},
		{1, 5, 5, 5},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/orders?page=%d&limit=%d", tc.page, tc.limit), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Orders     []models.Order `json:"orders"`
			Pagination struct {
				Page  int   `json:"page"`
				Limit int   `json:"limit"`
				Total int64 `json:"total"`
				Pages int   `json:"pages"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Orders, tc.wantRows, "page=%d limit=%d", tc.page, tc.limit)
		assert.EqualValues(t, total, resp.Pagination.Total)
		assert.Equal(t, tc.wantPages, resp.Pagination.Pages)
		assert.Equal(t, tc.page, resp.Pagination.Page)
	}
}

func TestGetAllOrdersStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	for _, status := range []string{"Pending", "Shipped", "Pending"} {
		require.NoError(t, db.Create(&models.Order{Status: status}).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=Pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	for _, o := range resp.Orders {
		assert.Equal(t, "Pending", o.Status)
	}
}

func TestGetOrderByIDIdempotentRead(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/api/orders", gin.H{
		"order_number": "ORD-2001",
		"items": []gin.H{
			{"product_id": 5, "product_name": "First", "quantity": 1, "price": 10},
			{"product_id": 7, "product_name": "Second", "quantity": 3, "price": 20},
			{"product_id": 2, "product_name": "Third", "quantity": 2, "price": 30},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	read := func() models.Order {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), nil)
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, req)
		require.Equal(t, http.StatusOK, rw.Code)
		var got models.Order
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
		return got
	}

	first := read()
	second := read()

	require.Len(t, first.Items, 3)
	assert.Equal(t, first.Items, second.Items)
	// Items come back in insertion order.
	assert.Equal(t, "First", first.Items[0].ProductName)
	assert.Equal(t, "Second", first.Items[1].ProductName)
	assert.Equal(t, "Third", first.Items[2].ProductName)
}

func TestGetOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	order := models.Order{Status: "Pending", CustomerName: "Before"}
	require.NoError(t, db.Create(&order).Error)

	body, _ := json.Marshal(gin.H{
		"customer_name":   "After",
		"tracking_number": "TRK-42",
		"total_amount":    99.5,
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, "After", got.CustomerName)
	assert.Equal(t, "TRK-42", got.TrackingNumber)
	assert.Equal(t, 99.5, got.TotalAmount)
	// Untouched fields survive the partial payload.
	assert.Equal(t, "Pending", got.Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	order := models.Order{Status: "Pending"}
	require.NoError(t, db.Create(&order).Error)

	body, _ := json.Marshal(gin.H{"status": "Shipped"})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, "Shipped", got.Status)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/api/orders", gin.H{
		"items": []gin.H{{"product_id": 1, "product_name": "X", "quantity": 1, "price": 5}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)
	require.Equal(t, http.StatusOK, dw.Code)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", created.ID).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestOrderWebSocketFeed(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/orders/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the handler a moment to register the client.
	time.Sleep(50 * time.Millisecond)

	body, _ := json.Marshal(gin.H{"order_number": "WS-1"})
	resp, err := http.Post(srv.URL+"/api/orders", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type  string       `json:"type"`
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "order_created", event.Type)
	assert.Equal(t, "WS-1", event.Order.OrderNumber)
}

func TestParsePagination(t *testing.T) {
	page, limit, err := parsePagination("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	_, _, err = parsePagination("0", "10")
	assert.Error(t, err)

	_, _, err = parsePagination("abc", "10")
	assert.Error(t, err)

	_, _, err = parsePagination("1", "-5")
	assert.Error(t, err)
}
