package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"gorm.io/gorm"
)

func categoryView(category models.Category) gin.H {
	var productsCount int64
	initializers.DB.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", category.ID, true).
		Count(&productsCount)

	return gin.H{
		"id":             category.ID,
		"name":           category.Name,
		"image_url":      category.ImageURL,
		"is_active":      category.IsActive,
		"created_at":     category.CreatedAt,
		"updated_at":     category.UpdatedAt,
		"products_count": productsCount,
	}
}

// GetCategories returns all active categories with their active-product counts.
func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Where("is_active = ?", true).Find(&categories); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	views := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView(category))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": views})
}

// GetAdminCategories returns every category, active or not. Admin only.
func GetAdminCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Find(&categories); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	views := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView(category))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"categories": views,
		"count":      len(categories),
	})
}

// CreateCategory creates a new category. Admin only.
func CreateCategory(ctx *gin.Context) {
	var categoryData struct {
		Name     string `json:"name" binding:"required"`
		ImageURL string `json:"image_url"`
		IsActive *bool  `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&categoryData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	category := models.Category{
		Name:     categoryData.Name,
		ImageURL: categoryData.ImageURL,
		IsActive: true,
	}
	if categoryData.IsActive != nil {
		category.IsActive = *categoryData.IsActive
	}

	if result := initializers.DB.Create(&category); result.Error != nil {
		log.Println("Category creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create category")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": categoryView(category)})
}

// UpdateCategory updates a category's fields. Admin only.
func UpdateCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("categoryId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var category models.Category
	if result := initializers.DB.First(&category, categoryId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var categoryData struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
		IsActive *bool  `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&categoryData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if categoryData.Name != "" {
		category.Name = categoryData.Name
	}
	if categoryData.ImageURL != "" {
		category.ImageURL = categoryData.ImageURL
	}
	if categoryData.IsActive != nil {
		category.IsActive = *categoryData.IsActive
	}

	if result := initializers.DB.Save(&category); result.Error != nil {
		log.Println("Category update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"category": categoryView(category)})
}

// DeleteCategory removes a category. Deletion is blocked while any product
// still references it.
func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("categoryId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var category models.Category
	if result := initializers.DB.First(&category, categoryId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var productsCount int64
	if result := initializers.DB.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Count(&productsCount); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if productsCount > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest,
			"Cannot delete category that contains products. Please move or delete products first.")
		return
	}

	if result := initializers.DB.Unscoped().Delete(&category); result.Error != nil {
		log.Println("Category deletion error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
