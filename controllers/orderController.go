package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"github.com/ppgstore/ppg-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgCartEmpty        = "Your cart is empty"
	msgOrderNotFound    = "Order not found"
	msgStatusOnlyUpdate = "Only order status can be updated"
	msgInvalidStatus    = "invalid order status"
)

var orderStatusLabels = map[string]string{
	models.OrderStatusPending:    "Pending",
	models.OrderStatusProcessing: "Processing",
	models.OrderStatusShipped:    "Shipped",
	models.OrderStatusDelivered:  "Delivered",
	models.OrderStatusCancelled:  "Cancelled",
}

// generateOrderNumber builds a unique order reference, e.g.
// ORD-20250901130500-1a2b3c4d.
func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

type shippingDetails struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
}

// missingShippingField returns the name of the first absent required field,
// or an empty string when all are present.
func missingShippingField(shipping shippingDetails) string {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", shipping.FullName},
		{"email", shipping.Email},
		{"phone_number", shipping.PhoneNumber},
		{"address", shipping.Address},
		{"city", shipping.City},
		{"state", shipping.State},
		{"zip_code", shipping.ZipCode},
	}
	for _, field := range required {
		if field.value == "" {
			return field.name
		}
	}
	return ""
}

// CreateOrder converts the caller's cart into an order. The snapshot
// (order row, order items at current prices, cart clear) is applied in a
// single transaction; the confirmation notification runs after commit and
// never fails the request.
func CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var shipping shippingDetails
	if err := ctx.ShouldBindJSON(&shipping); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if field := missingShippingField(shipping); field != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, field+" is required")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	var cartItems []models.CartItem
	if err := initializers.DB.
		Preload("Product").
		Where("cart_id = ?", cart.ID).
		Find(&cartItems).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}
	if len(cartItems) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgCartEmpty)
		return
	}

	// Total is computed once here, from current catalog prices. It is never
	// recomputed after the order exists.
	total := decimal.Zero
	for _, item := range cartItems {
		total = total.Add(item.Subtotal())
	}

	order := models.Order{
		UserID:        userID,
		OrderNumber:   generateOrderNumber(),
		FullName:      shipping.FullName,
		Email:         shipping.Email,
		PhoneNumber:   shipping.PhoneNumber,
		Address:       shipping.Address,
		City:          shipping.City,
		State:         shipping.State,
		ZipCode:       shipping.ZipCode,
		Total:         total,
		PaymentMethod: models.PaymentMethodCOD,
		OrderStatus:   models.OrderStatusPending,
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order")
		return
	}

	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			log.Println("Order item creation error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order items")
			return
		}
	}

	if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		log.Println("Cart clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Order commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	if result := initializers.DB.Preload("Items").First(&order, order.ID); result.Error != nil {
		log.Println("Database error:", result.Error)
	}

	// Notifications are best-effort; the order is already committed.
	if err := sendOrderConfirmationEmail(order); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
	if err := utils.PostOrderWebhook("order.created", order); err != nil {
		log.Println("Order webhook error:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"order":   order,
		"message": "Order created successfully",
	})
}

// GetOrders returns the caller's orders, newest first.
func GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders. Another user's order is
// indistinguishable from a missing one.
func GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", orderId, userID).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetAdminOrders returns all orders, optionally filtered by exact status.
// Admin only.
func GetAdminOrders(ctx *gin.Context) {
	query := initializers.DB.Preload("Items").Order("created_at desc")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus mutates an order's status. Any other field in the
// request body is rejected. Admin only.
func UpdateOrderStatus(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var body map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	for key := range body {
		if key != "order_status" && key != "send_notification" {
			sendErrorResponse(ctx, http.StatusBadRequest, msgStatusOnlyUpdate)
			return
		}
	}

	newStatus, ok := body["order_status"].(string)
	if !ok || !models.IsValidOrderStatus(newStatus) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("Items").First(&order, orderId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	order.OrderStatus = newStatus
	if result := initializers.DB.Model(&order).Update("order_status", newStatus); result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}

	// Same policy as checkout: a failed notification never fails the call.
	if notify, _ := body["send_notification"].(bool); notify {
		if err := sendStatusUpdateEmail(order); err != nil {
			log.Println("Error sending status update email:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order":   order,
		"message": "Order status updated successfully.",
	})
}

// DeleteOrder removes an order and its items. Shipped and delivered orders
// cannot be deleted. Admin only.
func DeleteOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	var order models.Order
	if result := initializers.DB.First(&order, orderId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	if order.OrderStatus == models.OrderStatusShipped || order.OrderStatus == models.OrderStatusDelivered {
		sendErrorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("Cannot delete orders with status '%s'", order.OrderStatus))
		return
	}

	tx := initializers.DB.Begin()
	if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		log.Println("Order item deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	if err := tx.Unscoped().Delete(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	if err := tx.Commit().Error; err != nil {
		log.Println("Order deletion commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d has been deleted successfully", order.ID),
	})
}

type orderEmailData struct {
	Order       models.Order
	OrderDate   string
	StatusLabel string
	Year        int
}

func sendOrderConfirmationEmail(order models.Order) error {
	data := orderEmailData{
		Order:     order,
		OrderDate: order.CreatedAt.Format("January 2, 2006"),
		Year:      time.Now().Year(),
	}

	htmlBody, err := utils.RenderTemplate(filepath.Join("templates", "order_confirmation.html"), data)
	if err != nil {
		return err
	}

	plainBody := fmt.Sprintf(`Dear %s,

Thank you for your order! Your order #%d has been received and is being processed.

Order Details:
- Order ID: %d
- Total: $%s
- Payment Method: Cash on Delivery
- Shipping Address: %s, %s, %s, %s

We will notify you when your order has been shipped.

Thank you for shopping with us!`,
		order.FullName, order.ID, order.ID, order.Total.StringFixed(2),
		order.Address, order.City, order.State, order.ZipCode)

	subject := fmt.Sprintf("Order Confirmation - Order #%d", order.ID)
	return utils.SendEmail(order.Email, subject, plainBody, htmlBody)
}

func sendStatusUpdateEmail(order models.Order) error {
	label, ok := orderStatusLabels[order.OrderStatus]
	if !ok {
		label = order.OrderStatus
	}

	data := orderEmailData{
		Order:       order,
		StatusLabel: label,
		Year:        time.Now().Year(),
	}

	htmlBody, err := utils.RenderTemplate(filepath.Join("templates", "status_update.html"), data)
	if err != nil {
		return err
	}

	plainBody := fmt.Sprintf(`Dear %s,

Your order #%d status has been updated to: %s

Thank you for shopping with us!`, order.FullName, order.ID, label)

	subject := fmt.Sprintf("Order Status Update - Order #%d", order.ID)
	return utils.SendEmail(order.Email, subject, plainBody, htmlBody)
}
