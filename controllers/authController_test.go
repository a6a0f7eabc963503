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

var registerBody = gin.H{
	"email":        "jane@example.com",
	"password":     "s3cret-pass",
	"password2":    "s3cret-pass",
	"first_name":   "Jane",
	"last_name":    "Doe",
	"phone_number": "555-0100",
	"address":      "1 Main St",
	"city":         "Springfield",
	"state":        "IL",
	"zip_code":     "62701",
}

type authResponse struct {
	User    models.User `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

func TestRegisterAndLogin(t *testing.T) {
	server := setupRouter(t)

	recorder := doRequest(t, server, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var registered authResponse
	decodeResponse(t, recorder, &registered)
	assert.NotEmpty(t, registered.Access)
	assert.NotEmpty(t, registered.Refresh)
	assert.Equal(t, models.RoleCustomer, registered.User.Role)

	recorder = doRequest(t, server, http.MethodPost, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, server, http.MethodPost, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "wrong-pass",
	}, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRegisterValidation(t *testing.T) {
	server := setupRouter(t)

	mismatched := gin.H{}
	for key, value := range registerBody {
		mismatched[key] = value
	}
	mismatched["password2"] = "different-pass"
	recorder := doRequest(t, server, http.MethodPost, "/auth/register", mismatched, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, server, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Duplicate email.
	recorder = doRequest(t, server, http.MethodPost, "/auth/register", registerBody, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRefreshToken(t *testing.T) {
	server := setupRouter(t)

	recorder := doRequest(t, server, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	var registered authResponse
	decodeResponse(t, recorder, &registered)

	recorder = doRequest(t, server, http.MethodPost, "/auth/login/refresh",
		gin.H{"refresh": registered.Refresh}, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var refreshed struct {
		Access string `json:"access"`
	}
	decodeResponse(t, recorder, &refreshed)
	assert.NotEmpty(t, refreshed.Access)

	// An access token is not accepted as a refresh token.
	recorder = doRequest(t, server, http.MethodPost, "/auth/login/refresh",
		gin.H{"refresh": registered.Access}, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// A refresh token is not accepted on authenticated routes.
	recorder = doRequest(t, server, http.MethodGet, "/auth/profile", nil, registered.Refresh)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestProfileUpdateCannotChangeRole(t *testing.T) {
	server := setupRouter(t)
	user := createTestUser(t, "jane@example.com", models.RoleCustomer)
	token := tokenFor(t, user)

	recorder := doRequest(t, server, http.MethodPut, "/auth/profile", gin.H{
		"city": "Shelbyville",
		"role": models.RoleAdmin,
	}, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.User
	require.NoError(t, initializers.DB.First(&updated, user.ID).Error)
	assert.Equal(t, "Shelbyville", updated.City)
	assert.Equal(t, models.RoleCustomer, updated.Role)
}

func TestAdminUserManagement(t *testing.T) {
	server := setupRouter(t)
	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	customer := createTestUser(t, "jane@example.com", models.RoleCustomer)
	adminToken := tokenFor(t, admin)

	recorder := doRequest(t, server, http.MethodGet, "/auth/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	var list struct {
		Users []models.User `json:"users"`
		Count int           `json:"count"`
	}
	decodeResponse(t, recorder, &list)
	assert.Equal(t, 2, list.Count)

	// Admins may change roles.
	recorder = doRequest(t, server, http.MethodPut,
		fmt.Sprintf("/auth/admin/users/%d", customer.ID),
		gin.H{"role": models.RoleAdmin}, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	var promoted models.User
	require.NoError(t, initializers.DB.First(&promoted, customer.ID).Error)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// Self-deletion is rejected.
	recorder = doRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/auth/admin/users/%d", admin.ID), nil, adminToken)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cannot delete your own account")

	recorder = doRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/auth/admin/users/%d", customer.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	initializers.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Non-admins cannot reach user management.
	stranger := createTestUser(t, "someone@example.com", models.RoleCustomer)
	recorder = doRequest(t, server, http.MethodGet, "/auth/admin/users", nil, tokenFor(t, stranger))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
