package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ProductTypeClothing    = "CLOTHING"
	ProductTypeAccessories = "ACCESSORIES"
	ProductTypeFootwear    = "FOOTWEAR"
)

type Category struct {
	gorm.Model
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	IsActive bool      `json:"is_active"`
	Products []Product `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type Product struct {
	gorm.Model
	CategoryID  uint            `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL    string          `json:"image_url"`
	ProductType string          `json:"product_type" gorm:"size:20"`
	IsActive    bool            `json:"is_active"`
}

// IsValidProductType reports whether the given value is a known product type.
func IsValidProductType(productType string) bool {
	switch productType {
	case ProductTypeClothing, ProductTypeAccessories, ProductTypeFootwear:
		return true
	default:
		return false
	}
}
