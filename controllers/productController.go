package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const newestProductsLimit = 10

// GetProductsByCategory returns the active products of a category.
func GetProductsByCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("categoryId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var products []models.Product
	result := initializers.DB.
		Where("category_id = ? AND is_active = ?", categoryId, true).
		Find(&products)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

// GetNewestProducts returns the most recently added active products.
func GetNewestProducts(ctx *gin.Context) {
	var products []models.Product
	result := initializers.DB.
		Where("is_active = ?", true).
		Order("created_at desc").
		Limit(newestProductsLimit).
		Find(&products)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a single active product by ID.
func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse product id")
		return
	}

	var product models.Product
	result := initializers.DB.
		Where("id = ? AND is_active = ?", productId, true).
		First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

// GetAdminProducts returns every product, active or not. Admin only.
func GetAdminProducts(ctx *gin.Context) {
	var products []models.Product
	if result := initializers.DB.Find(&products); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct creates a new product. Admin only.
func CreateProduct(ctx *gin.Context) {
	var productData struct {
		CategoryID  uint            `json:"category_id" binding:"required"`
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		ImageURL    string          `json:"image_url"`
		ProductType string          `json:"product_type"`
		IsActive    *bool           `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&productData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if productData.ProductType == "" {
		productData.ProductType = models.ProductTypeClothing
	}
	if !models.IsValidProductType(productData.ProductType) {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid product type")
		return
	}

	var category models.Category
	if result := initializers.DB.First(&category, productData.CategoryID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category does not exist")
		return
	}

	product := models.Product{
		CategoryID:  productData.CategoryID,
		Name:        productData.Name,
		Description: productData.Description,
		Price:       productData.Price,
		ImageURL:    productData.ImageURL,
		ProductType: productData.ProductType,
		IsActive:    true,
	}
	if productData.IsActive != nil {
		product.IsActive = *productData.IsActive
	}

	if result := initializers.DB.Create(&product); result.Error != nil {
		log.Println("Product creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create product")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct updates a product's fields. Admin only.
func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse product id")
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var productData struct {
		CategoryID  uint             `json:"category_id"`
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		ImageURL    string           `json:"image_url"`
		ProductType string           `json:"product_type"`
		IsActive    *bool            `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&productData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if productData.CategoryID != 0 {
		var category models.Category
		if result := initializers.DB.First(&category, productData.CategoryID); result.Error != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Category does not exist")
			return
		}
		product.CategoryID = productData.CategoryID
	}
	if productData.Name != "" {
		product.Name = productData.Name
	}
	if productData.Description != "" {
		product.Description = productData.Description
	}
	if productData.Price != nil {
		product.Price = *productData.Price
	}
	if productData.ImageURL != "" {
		product.ImageURL = productData.ImageURL
	}
	if productData.ProductType != "" {
		if !models.IsValidProductType(productData.ProductType) {
			sendErrorResponse(ctx, http.StatusBadRequest, "invalid product type")
			return
		}
		product.ProductType = productData.ProductType
	}
	if productData.IsActive != nil {
		product.IsActive = *productData.IsActive
	}

	if result := initializers.DB.Save(&product); result.Error != nil {
		log.Println("Product update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product. Admin only.
func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse product id")
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if result := initializers.DB.Unscoped().Delete(&product); result.Error != nil {
		log.Println("Product deletion error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully."})
}
