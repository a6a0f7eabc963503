package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"gorm.io/gorm"
)

// GetUsers returns all user accounts. Admin only.
func GetUsers(ctx *gin.Context) {
	var users []models.User
	if result := initializers.DB.Find(&users); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// UpdateUser updates any profile field of a user, including role. Admin only.
func UpdateUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var updateData struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
		City        string `json:"city"`
		State       string `json:"state"`
		ZipCode     string `json:"zip_code"`
		Role        string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if updateData.Role != "" && updateData.Role != models.RoleCustomer && updateData.Role != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid role")
		return
	}

	result := initializers.DB.Model(&user).Updates(models.User{
		FirstName:   updateData.FirstName,
		LastName:    updateData.LastName,
		PhoneNumber: updateData.PhoneNumber,
		Address:     updateData.Address,
		City:        updateData.City,
		State:       updateData.State,
		ZipCode:     updateData.ZipCode,
		Role:        updateData.Role,
	})
	if result.Error != nil {
		log.Println("User update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"user":    user,
		"message": "User updated successfully",
	})
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	callerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}
	if uint(userId) == callerID {
		sendErrorResponse(ctx, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userId); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if result := initializers.DB.Unscoped().Delete(&user); result.Error != nil {
		log.Println("User deletion error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s deleted successfully", user.Email),
	})
}
