package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
	"github.com/sokoni-store/sokoni-api/services"
	"github.com/sokoni-store/sokoni-api/utils"
)

// CreateOrder is the checkout endpoint. Only the order write can fail the
// request; aggregate update, notification fan-out, email and WhatsApp all
// run best-effort afterwards.
func CreateOrder(ctx *gin.Context) {
	var input services.CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Log.Warn("Checkout bind error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := Checkout.PlaceOrder(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product or variant not found")
			return
		}
		Log.Error("Checkout failed", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	sendOrderConfirmation(order)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":   "Order placed successfully.",
		"orderId":   order.ID,
		"reference": order.Reference,
		"order":     order,
	})
}

func sendOrderConfirmation(order *models.Order) {
	if order.Email != "" {
		emailData := utils.EmailData{
			Name:     order.CustomerName,
			Message:  "Thank you for your order! We will keep you posted as it moves.",
			OrderRef: order.Reference,
			TotalKES: fmt.Sprintf("%.2f", float64(order.TotalCents)/100),
			LogoURL:  os.Getenv("FRONTEND_URL") + "/images/logo.png",
		}
		templatePath := filepath.Join("templates", "order_confirmation.html")
		if err := utils.SendEmail(order.Email, "Order "+order.Reference+" received", emailData, templatePath); err != nil {
			Log.Warn("Order confirmation email failed", zap.String("reference", order.Reference), zap.Error(err))
		}
	}

	if order.Phone != "" {
		message := fmt.Sprintf("Habari %s! Your order %s (KES %.2f) has been received. We'll notify you when it ships.",
			order.CustomerName, order.Reference, float64(order.TotalCents)/100)
		if err := utils.SendWhatsAppMessage(order.Phone, message); err != nil {
			Log.Warn("Order confirmation WhatsApp failed", zap.String("reference", order.Reference), zap.Error(err))
		} else if err := Audit.Record(0, "order.whatsapp", "order", order.ID, nil, nil,
			"Order confirmation sent via WhatsApp to "+order.Phone); err != nil {
			Log.Warn("Audit write failed for whatsapp send", zap.Uint("orderId", order.ID), zap.Error(err))
		}
	}
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("Items")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("reference LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("reference LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("Items").First(&order, orderId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func GetOrdersByCustomer(ctx *gin.Context) {
	customerId, err := strconv.Atoi(ctx.Param("customerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse customerId")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Where("customer_id = ?", customerId).
		Order("created_at " + sortOrder).
		Find(&orders)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrder handles admin order updates: status transitions, notes and
// refund reason. Invalid status values and disallowed transitions are 400s
// before any write.
func UpdateOrder(ctx *gin.Context) {
	var body struct {
		Status       *string `json:"status"`
		AdminNotes   *string `json:"adminNotes"`
		RefundReason *string `json:"refundReason"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	in := services.TransitionInput{
		AdminNotes:   body.AdminNotes,
		RefundReason: body.RefundReason,
	}
	if body.Status != nil {
		in.Status = *body.Status
	}

	order, err := Orders.Transition(uint(orderId), actorID(ctx), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		case errors.Is(err, services.ErrInvalidTransition):
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		default:
			Log.Error("Order update failed", zap.Int("orderId", orderId), zap.Error(err))
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// DeleteOrder is explicit data-wipe tooling, SUPER_ADMIN only.
func DeleteOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	result := initializers.DB.Delete(&models.Order{}, orderId)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if err := Audit.Record(actorID(ctx), "order.delete", "order", uint(orderId), nil, nil,
		fmt.Sprintf("Order %d wiped", orderId)); err != nil {
		Log.Warn("Audit write failed for order delete", zap.Int("orderId", orderId), zap.Error(err))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := initializers.DB.
		Model(&models.Order{}).
		Where("status NOT IN ?", []string{
			models.OrderStatusDelivered,
			models.OrderStatusCancelled,
			models.OrderStatusRefunded,
		}).
		Count(&count)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count undelivered orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
