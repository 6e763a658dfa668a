package services

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

type CheckoutItem struct {
	ProductID uint `json:"productId" binding:"required"`
	VariantID uint `json:"variantId"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutInput struct {
	CustomerName  string         `json:"customerName" binding:"required"`
	Phone         string         `json:"phone" binding:"required"`
	Email         string         `json:"email"`
	City          string         `json:"city"`
	PaymentMethod string         `json:"paymentMethod"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// CheckoutService runs the order-create sequence: the order write is the
// only step that can fail the request. Customer aggregate update and
// notification fan-out commit independently afterwards; a crash in between
// leaves partial side effects, which is the accepted failure model.
type CheckoutService struct {
	db        *gorm.DB
	customers *CustomerService
	notifier  *NotificationService
	log       *zap.Logger
}

func NewCheckoutService(db *gorm.DB, customers *CustomerService, notifier *NotificationService, log *zap.Logger) *CheckoutService {
	return &CheckoutService{db: db, customers: customers, notifier: notifier, log: log}
}

func newOrderReference() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func shippingCents() int64 {
	n, err := strconv.ParseInt(os.Getenv("SHIPPING_FLAT_CENTS"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PlaceOrder snapshots line items from the catalog (client-supplied prices
// are never trusted), writes order plus items in one transaction, then runs
// the best-effort side effects.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	var items []models.OrderItem
	var subtotal int64
	for _, reqItem := range in.Items {
		var product models.Product
		if err := s.db.First(&product, reqItem.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		name := product.Name
		unitPrice := product.PriceCents
		if reqItem.VariantID != 0 {
			var variant models.ProductVariant
			err := s.db.Where("id = ? AND product_id = ?", reqItem.VariantID, reqItem.ProductID).
				First(&variant).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNotFound
				}
				return nil, err
			}
			name = product.Name + " (" + variant.Label + ")"
			unitPrice = variant.PriceCents
		}

		items = append(items, models.OrderItem{
			ProductID:      reqItem.ProductID,
			VariantID:      reqItem.VariantID,
			Name:           name,
			UnitPriceCents: unitPrice,
			Quantity:       reqItem.Quantity,
		})
		subtotal += unitPrice * int64(reqItem.Quantity)
	}

	shipping := shippingCents()
	order := models.Order{
		Reference:     newOrderReference(),
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Email:         in.Email,
		City:          in.City,
		PaymentMethod: in.PaymentMethod,
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TotalCents:    subtotal + shipping,
		Status:        models.OrderStatusPending,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	order.Items = items

	customer, err := s.customers.ApplyOrder(in.CustomerName, in.Phone, in.Email, in.City, order.TotalCents)
	if err != nil {
		s.log.Warn("Customer aggregate update failed", zap.String("reference", order.Reference), zap.Error(err))
	} else {
		if err := s.db.Model(&order).Update("customer_id", customer.ID).Error; err != nil {
			s.log.Warn("Could not link order to customer", zap.String("reference", order.Reference), zap.Error(err))
		}
	}

	if _, err := s.notifier.NotifyNewOrder(ctx, &order, customer); err != nil {
		s.log.Warn("Order notification failed", zap.String("reference", order.Reference), zap.Error(err))
	}

	return &order, nil
}
