package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the PPG Store API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/register" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/login/refresh" - Refresh an access token
- GET "/auth/profile" - Get own profile
- PUT/PATCH "/auth/profile" - Update own profile
- GET "/auth/admin/users" - List all users (admin)
- PUT "/auth/admin/users/:userId" - Update a user (admin)
- DELETE "/auth/admin/users/:userId" - Delete a user (admin)

CATALOG
- GET "/categories" - List active categories
- GET "/categories/:categoryId/products" - Products of a category
- GET "/products/newest" - Newest products
- GET "/products/:id" - Get product by ID
- CRUD "/admin/products", "/admin/categories" - Catalog management (admin)

CART
- GET "/cart" - Get own cart
- POST "/cart/add" - Add a product to the cart
- PUT "/cart/update/:itemId" - Set a cart line's quantity
- DELETE "/cart/remove/:itemId" - Remove a cart line

ORDER
- POST "/orders/create" - Place an order from the cart
- GET "/orders" - List own orders
- GET "/orders/:orderId" - Get own order by ID
- GET "/orders/admin" - List all orders (admin)
- PUT/PATCH "/orders/admin/:orderId" - Update order status (admin)
- DELETE "/orders/admin/:orderId" - Delete order (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
