package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ppgstore/ppg-api/initializers"
	"github.com/ppgstore/ppg-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productListResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

func TestPublicListingsHideInactive(t *testing.T) {
	server := setupRouter(t)
	category := createTestCategory(t, "Shirts")
	active := createTestProduct(t, category, "Plain Tee", "10.00")
	inactive := createTestProduct(t, category, "Retired Tee", "12.00")
	require.NoError(t, initializers.DB.Model(&inactive).Update("is_active", false).Error)

	recorder := doRequest(t, server, http.MethodGet,
		fmt.Sprintf("/categories/%d/products", category.ID), nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var list productListResponse
	decodeResponse(t, recorder, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, active.ID, list.Products[0].ID)

	recorder = doRequest(t, server, http.MethodGet, "/products/newest", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeResponse(t, recorder, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, active.ID, list.Products[0].ID)

	recorder = doRequest(t, server, http.MethodGet,
		fmt.Sprintf("/products/%d", inactive.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(t, server, http.MethodGet,
		fmt.Sprintf("/products/%d", active.ID), nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestInactiveCategoryHiddenFromPublicList(t *testing.T) {
	server := setupRouter(t)
	createTestCategory(t, "Shirts")
	hidden := models.Category{Name: "Archive", IsActive: false}
	require.NoError(t, initializers.DB.Create(&hidden).Error)

	recorder := doRequest(t, server, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	decodeResponse(t, recorder, &resp)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Shirts", resp.Categories[0].Name)
}

func TestAdminCatalogRoutesRequireAdmin(t *testing.T) {
	server := setupRouter(t)
	customer := createTestUser(t, "buyer@example.com", models.RoleCustomer)
	category := createTestCategory(t, "Shirts")

	recorder := doRequest(t, server, http.MethodPost, "/admin/products", gin.H{
		"category_id": category.ID,
		"name":        "Plain Tee",
		"price":       "10.00",
	}, tokenFor(t, customer))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(t, server, http.MethodPost, "/admin/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminCreatesProduct(t *testing.T) {
	server := setupRouter(t)
	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	adminToken := tokenFor(t, admin)
	category := createTestCategory(t, "Shirts")

	recorder := doRequest(t, server, http.MethodPost, "/admin/products", gin.H{
		"category_id":  category.ID,
		"name":         "Plain Tee",
		"description":  "A plain tee",
		"price":        "10.00",
		"product_type": models.ProductTypeClothing,
	}, adminToken)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Unknown category or product type is rejected.
	recorder = doRequest(t, server, http.MethodPost, "/admin/products", gin.H{
		"category_id": 9999,
		"name":        "Orphan Tee",
		"price":       "10.00",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, server, http.MethodPost, "/admin/products", gin.H{
		"category_id":  category.ID,
		"name":         "Odd Tee",
		"price":        "10.00",
		"product_type": "FURNITURE",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteCategoryBlockedWhileProductsExist(t *testing.T) {
	server := setupRouter(t)
	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	adminToken := tokenFor(t, admin)
	category := createTestCategory(t, "Shirts")
	product := createTestProduct(t, category, "Plain Tee", "10.00")

	path := fmt.Sprintf("/admin/categories/%d", category.ID)
	recorder := doRequest(t, server, http.MethodDelete, path, nil, adminToken)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cannot delete category that contains products")

	var count int64
	initializers.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	recorder = doRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/admin/products/%d", product.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, server, http.MethodDelete, path, nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	initializers.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
