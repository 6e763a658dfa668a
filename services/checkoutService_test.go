package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

func newCheckoutService(db *gorm.DB, relay *fakeRelay) *CheckoutService {
	log := zap.NewNop()
	customers := NewCustomerService(db)
	notifier := NewNotificationService(db, relay, nil, nil, log)
	return NewCheckoutService(db, customers, notifier, log)
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Product, models.ProductVariant) {
	t.Helper()
	product := models.Product{Name: "Kitenge Shirt", PriceCents: 2500, Category: "clothing"}
	require.NoError(t, db.Create(&product).Error)
	variant := models.ProductVariant{ProductID: product.ID, Label: "XL", PriceCents: 2800}
	require.NoError(t, db.Create(&variant).Error)
	return product, variant
}

func TestPlaceOrderSnapshotsItemsAndTotals(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_CENTS", "300")
	db := openTestDB(t)
	relay := &fakeRelay{}
	svc := newCheckoutService(db, relay)
	product, variant := seedCatalog(t, db)

	order, err := svc.PlaceOrder(context.Background(), CheckoutInput{
		CustomerName:  "Amina Yusuf",
		Phone:         "+254711000001",
		Email:         "amina@example.com",
		City:          "Mombasa",
		PaymentMethod: "mpesa",
		Items: []CheckoutItem{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, VariantID: variant.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Reference, "ORD-"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*2500+2800), order.SubtotalCents)
	assert.Equal(t, int64(300), order.ShippingCents)
	assert.Equal(t, order.SubtotalCents+300, order.TotalCents)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id asc").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "Kitenge Shirt", items[0].Name)
	assert.Equal(t, int64(2500), items[0].UnitPriceCents)
	assert.Equal(t, "Kitenge Shirt (XL)", items[1].Name)
	assert.Equal(t, int64(2800), items[1].UnitPriceCents)
}

func TestPlaceOrderUpdatesCustomerAndNotifies(t *testing.T) {
	db := openTestDB(t)
	relay := &fakeRelay{}
	svc := newCheckoutService(db, relay)
	product, _ := seedCatalog(t, db)

	seed := models.Customer{Name: "Amina Yusuf", Phone: "+254711000001", TotalOrders: 1, TotalSpentCents: 3000}
	require.NoError(t, db.Create(&seed).Error)

	order, err := svc.PlaceOrder(context.Background(), CheckoutInput{
		CustomerName: "Amina Yusuf",
		Phone:        "+254711000001",
		Items:        []CheckoutItem{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	var customer models.Customer
	require.NoError(t, db.Where("phone = ?", "+254711000001").First(&customer).Error)
	assert.Equal(t, 2, customer.TotalOrders)
	assert.Equal(t, int64(3000+order.TotalCents), customer.TotalSpentCents)
	assert.Contains(t, Tags(&customer), "Regular")

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.NotNil(t, reloaded.CustomerID)
	assert.Equal(t, customer.ID, *reloaded.CustomerID)

	var notification models.AdminNotification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.NotificationTypeNewOrder, notification.Type)
	assert.Contains(t, notification.Title, "⭐")

	require.Len(t, relay.events, 1)
	assert.Equal(t, "new-order", relay.events[0])
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	svc := newCheckoutService(db, &fakeRelay{})

	_, err := svc.PlaceOrder(context.Background(), CheckoutInput{
		CustomerName: "Amina Yusuf",
		Phone:        "+254711000001",
		Items:        []CheckoutItem{{ProductID: 404, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderSucceedsWhenRelayIsDown(t *testing.T) {
	db := openTestDB(t)
	relay := &fakeRelay{
		publishFunc: func(ctx context.Context, channel, event string, payload any) error {
			return errors.New("relay unreachable")
		},
	}
	svc := newCheckoutService(db, relay)
	product, _ := seedCatalog(t, db)

	order, err := svc.PlaceOrder(context.Background(), CheckoutInput{
		CustomerName: "Amina Yusuf",
		Phone:        "+254711000001",
		Items:        []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)

	// the notification row still lands even though the broadcast failed
	var count int64
	db.Model(&models.AdminNotification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
