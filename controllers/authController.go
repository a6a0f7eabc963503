package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this email already exists"
	msgPasswordMismatch      = "password fields don't match"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidRefreshToken   = "invalid or expired refresh token"
	msgUserCreated           = "User account created successfully"
	msgProfileUpdated        = "Profile updated successfully"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateAccessToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(accessTokenTTL).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func generateRefreshToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"typ":     "refresh",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(refreshTokenTTL).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// currentUserID extracts the authenticated user's ID from the claims set
// by the auth middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return 0, false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// Register handles user registration and returns a token pair.
func Register(ctx *gin.Context) {
	var registerData struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=8"`
		Password2   string `json:"password2" binding:"required"`
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
		City        string `json:"city"`
		State       string `json:"state"`
		ZipCode     string `json:"zip_code"`
		Role        string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if registerData.Password != registerData.Password2 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordMismatch)
		return
	}

	var existingUser models.User
	result := initializers.DB.Where("email = ?", registerData.Email).Find(&existingUser)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	role := registerData.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid role")
		return
	}

	user := models.User{
		Email:       registerData.Email,
		Password:    hashedPassword,
		FirstName:   registerData.FirstName,
		LastName:    registerData.LastName,
		PhoneNumber: registerData.PhoneNumber,
		Address:     registerData.Address,
		City:        registerData.City,
		State:       registerData.State,
		ZipCode:     registerData.ZipCode,
		Role:        role,
	}
	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	access, err := generateAccessToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}
	refresh, err := generateRefreshToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
		"message": msgUserCreated,
	})
}

// Login handles user authentication.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	access, err := generateAccessToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}
	refresh, err := generateRefreshToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(ctx *gin.Context) {
	var refreshData struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&refreshData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	token, err := jwt.Parse(refreshData.Refresh, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}
	if tokenType, _ := claims["typ"].(string); tokenType != "refresh" {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, uint(userID)); result.Error != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	access, err := generateAccessToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"access": access})
}

// GetProfile returns the authenticated user's record.
func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the caller's contact and address fields. Email and
// role cannot be changed through this path.
func UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
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
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	// Updates with a struct skips zero-valued fields, so omitted fields
	// keep their stored values.
	result := initializers.DB.Model(&user).Updates(models.User{
		FirstName:   updateData.FirstName,
		LastName:    updateData.LastName,
		PhoneNumber: updateData.PhoneNumber,
		Address:     updateData.Address,
		City:        updateData.City,
		State:       updateData.State,
		ZipCode:     updateData.ZipCode,
	})
	if result.Error != nil {
		log.Println("Profile update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"user":    user,
		"message": msgProfileUpdated,
	})
}
