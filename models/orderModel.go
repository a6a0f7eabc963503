package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

const PaymentMethodCOD = "COD"

// Order is an immutable snapshot taken at checkout. Total is computed once
// from the cart and never recomputed from the items.
type Order struct {
	gorm.Model
	UserID        uint            `json:"user_id"`
	OrderNumber   string          `json:"order_number" gorm:"uniqueIndex;size:64"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phone_number"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	ZipCode       string          `json:"zip_code"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	PaymentMethod string          `json:"payment_method" gorm:"size:16;default:COD"`
	OrderStatus   string          `json:"order_status" gorm:"size:16;default:PENDING"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem carries the product's price at the time the order was placed,
// so later catalog price changes do not alter order history.
type OrderItem struct {
	gorm.Model
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity    int             `json:"quantity"`
}

// IsValidOrderStatus reports whether the given value is a known order status.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}
