package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is one (cart, product) line. The unique index keeps a product
// on a single line per cart; adding it again increments the quantity.
type CartItem struct {
	gorm.Model
	CartID    uint    `json:"cart_id" gorm:"uniqueIndex:idx_cart_product"`
	ProductID uint    `json:"product_id" gorm:"uniqueIndex:idx_cart_product"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is quantity times the product's current price. It is computed,
// never stored.
func (item CartItem) Subtotal() decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// TotalPrice sums the subtotals of all lines. Items must be preloaded
// with their products.
func (cart Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
