package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
	"github.com/sokoni-store/sokoni-api/services"
)

func GetCustomers(ctx *gin.Context) {
	var customers []models.Customer

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Order("total_spent_cents desc")
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if result := query.Limit(limit).Offset(offset).Find(&customers); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch customers", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Customer{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	countQuery.Count(&count)

	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

func GetCustomer(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse customer id")
		return
	}

	var customer models.Customer
	if err := initializers.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Customer not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var orders []models.Order
	initializers.DB.Where("customer_id = ?", customer.ID).
		Order("created_at desc").Limit(20).Find(&orders)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"customer": customer,
		"tags":     services.Tags(&customer),
		"orders":   orders,
	})
}

// BlockCustomer toggles the block flag and audits the change.
func BlockCustomer(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse customer id")
		return
	}

	var customer models.Customer
	if err := initializers.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Customer not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	oldBlocked := customer.Blocked
	customer.Blocked = !customer.Blocked
	if err := initializers.DB.Model(&customer).Update("blocked", customer.Blocked).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	if err := Audit.Record(actorID(ctx), "customer.block", "customer", customer.ID,
		map[string]bool{"blocked": oldBlocked},
		map[string]bool{"blocked": customer.Blocked},
		"Customer "+customer.Phone+" block flag toggled"); err != nil {
		Log.Warn("Audit write failed for customer block", zap.Uint("customerId", customer.ID), zap.Error(err))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"customer": customer})
}
