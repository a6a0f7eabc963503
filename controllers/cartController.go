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

const (
	msgCartItemNotFound   = "Item not found"
	msgQuantityTooLow     = "Quantity must be greater than 0"
	msgNegativeQuantity   = "Quantity cannot be negative"
	msgProductNotFound    = "Product not found"
	msgFailedToLoadCart   = "Failed to fetch cart"
	msgFailedToCreateCart = "Failed to create cart"
)

// getOrCreateCart returns the user's cart, creating an empty one on first
// access.
func getOrCreateCart(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = initializers.DB.Create(&cart).Error
	}
	return cart, err
}

// cartResponse reloads the cart with its lines and products and returns the
// full recomputed view. Every cart mutation responds with this.
func cartResponse(ctx *gin.Context, cartID uint) {
	var cart models.Cart
	result := initializers.DB.
		Preload("Items.Product").
		First(&cart, cartID)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	items := make([]gin.H, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, gin.H{
			"id":       item.ID,
			"product":  item.Product,
			"quantity": item.Quantity,
			"subtotal": item.Subtotal(),
		})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart": gin.H{
			"id":    cart.ID,
			"items": items,
			"total": cart.TotalPrice(),
		},
	})
}

// GetCart returns the caller's cart, creating it lazily on first access.
func GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	cartResponse(ctx, cart.ID)
}

// AddToCart adds a product to the caller's cart. Adding a product already
// in the cart increments its line quantity instead of creating a new line.
func AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var addData struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&addData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if addData.Quantity <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgQuantityTooLow)
		return
	}

	var product models.Product
	err := initializers.DB.
		Where("id = ? AND is_active = ?", addData.ProductID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	var existingItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, addData.ProductID).
		First(&existingItem).Error

	if err == nil {
		existingItem.Quantity += addData.Quantity
		if err := initializers.DB.Save(&existingItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Unable to update cart item quantity.")
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		cartItem := models.CartItem{
			CartID:    cart.ID,
			ProductID: addData.ProductID,
			Quantity:  addData.Quantity,
		}
		if err := initializers.DB.Create(&cartItem).Error; err != nil {
			log.Println("Create error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create cart item")
			return
		}
	} else {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	cartResponse(ctx, cart.ID)
}

// findOwnedCartItem loads a cart line by ID, scoped to the caller's cart.
func findOwnedCartItem(userID uint, itemID int) (models.CartItem, error) {
	var item models.CartItem
	err := initializers.DB.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}

// UpdateCartItem sets a line's quantity. Zero deletes the line, negative
// values are rejected.
func UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
		return
	}

	var updateData struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if *updateData.Quantity < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgNegativeQuantity)
		return
	}

	item, err := findOwnedCartItem(userID, itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if *updateData.Quantity == 0 {
		if err := initializers.DB.Unscoped().Delete(&item).Error; err != nil {
			log.Println("Delete error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	} else {
		item.Quantity = *updateData.Quantity
		if err := initializers.DB.Save(&item).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	cartResponse(ctx, item.CartID)
}

// RemoveCartItem deletes a line from the caller's cart.
func RemoveCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
		return
	}

	item, err := findOwnedCartItem(userID, itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := initializers.DB.Unscoped().Delete(&item).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	cartResponse(ctx, item.CartID)
}
