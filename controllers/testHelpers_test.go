package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"github.com/ppgstore/ppg-api/routes"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", testJWTSecret)
	os.Exit(m.Run())
}

// setupTestDB points initializers.DB at a fresh in-memory sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	initializers.DB = db
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB(t)

	server := gin.New()
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	return server
}

func createTestUser(t *testing.T, email, role string) models.User {
	t.Helper()
	user := models.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, initializers.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func createTestCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, IsActive: true}
	require.NoError(t, initializers.DB.Create(&category).Error)
	return category
}

func createTestProduct(t *testing.T, category models.Category, name, price string) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		ProductType: models.ProductTypeClothing,
		IsActive:    true,
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}

func doRequest(t *testing.T, server *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

// addToCart puts a product into the user's cart through the API.
func addToCart(t *testing.T, server *gin.Engine, token string, productID uint, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, server, http.MethodPost, "/cart/add", gin.H{
		"product_id": productID,
		"quantity":   quantity,
	}, token)
}

var validShipping = gin.H{
	"full_name":    "Jane Doe",
	"email":        "jane@example.com",
	"phone_number": "555-0100",
	"address":      "1 Main St",
	"city":         "Springfield",
	"state":        "IL",
	"zip_code":     "62701",
}
