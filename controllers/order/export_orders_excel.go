package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/velvetcart/storefront-api/models"
	"gorm.io/gorm"
)

// GET /api/orders/export-excel (admin)
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("order_date DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		// One count query per order keeps memory flat for large exports.
		itemCounts := make(map[uint]int64, len(orders))
		for _, o := range orders {
			var n int64
			if err := db.Model(&models.OrderItem{}).
				Where("order_id = ?", o.ID).
				Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count order items"})
				return
			}
			itemCounts[o.ID] = n
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderNumber", "CustomerName", "CustomerEmail", "CustomerPhone",
			"ShippingAddress", "TotalAmount", "ShippingCost", "Tax", "Status",
			"PaymentMethod", "PaymentStatus", "TrackingNumber", "Items", "OrderDate",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CustomerName)
			row.AddCell().SetValue(o.CustomerEmail)
			row.AddCell().SetValue(o.CustomerPhone)
			row.AddCell().SetValue(o.ShippingAddress)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.ShippingCost)
			row.AddCell().SetValue(o.Tax)
			row.AddCell().SetValue(o.Status)
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(o.PaymentStatus)
			row.AddCell().SetValue(o.TrackingNumber)
			row.AddCell().SetValue(itemCounts[o.ID])
			row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
