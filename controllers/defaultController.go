package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Sokoni API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create admin account
- POST "/auth/login" - Access admin account

PRODUCT
- POST "/product" - Create new product
- GET "/product" - Get all products
- GET "/product/{id}" - Get product by ID
- PATCH "/product/{id}/archive" - Archive product
- POST "/product-images" - Add product images

CART
- POST "/cart" - Add item to cart
- GET "/cart/{userId}" - Get cart for a user

ORDER
- POST "/order" - Place a new order (checkout)
- GET "/order" - Retrieve all orders
- GET "/order/{orderId}" - Get order by ID
- GET "/order/customer/{customerId}" - Get orders for a customer
- PATCH "/order/{orderId}" - Update order status/notes
- DELETE "/order/{orderId}" - Delete order by ID

CUSTOMER
- GET "/customer" - Retrieve all customers
- GET "/customer/{id}" - Get customer by ID
- PATCH "/customer/{id}/block" - Toggle customer block flag

NOTIFICATION
- GET "/notification" - List admin notifications
- PATCH "/notification/{id}/read" - Mark one read
- POST "/notification/read-all" - Mark all read
- DELETE "/notification/{id}" - Delete notification

AUDIT
- GET "/audit" - Recent audit entries
- GET "/audit/stats" - Per-actor summaries
- GET "/audit/{entityType}/{entityId}" - Entity timeline

PUSH
- GET "/push/key" - VAPID public key
- POST "/push/subscribe" - Register push subscription
- DELETE "/push/subscribe" - Remove push subscription

MISC
- GET "/cities" - Shipping cities
- PUT "/cities" - Replace shipping cities
- POST "/newsletter" - Subscribe to newsletter
- DELETE "/newsletter/{email}" - Unsubscribe from newsletter`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
