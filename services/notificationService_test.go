package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sokoni-store/sokoni-api/models"
)

type fakeRelay struct {
	publishFunc func(ctx context.Context, channel, event string, payload any) error
	channels    []string
	events      []string
}

func (f *fakeRelay) Publish(ctx context.Context, channel, event string, payload any) error {
	f.channels = append(f.channels, channel)
	f.events = append(f.events, event)
	if f.publishFunc != nil {
		return f.publishFunc(ctx, channel, event, payload)
	}
	return nil
}

type fakePush struct {
	sendFunc func(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error)
}

func (f *fakePush) Send(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error) {
	if f.sendFunc != nil {
		return f.sendFunc(ctx, sub, payload)
	}
	return 201, nil
}

func TestNotifyNewOrderWritesRowAndBroadcasts(t *testing.T) {
	db := openTestDB(t)
	relay := &fakeRelay{}
	svc := NewNotificationService(db, relay, nil, nil, zap.NewNop())

	order := models.Order{Reference: "ORD-AB12CD34", TotalCents: 5000, Status: models.OrderStatusPending, Phone: "+254711000001"}
	require.NoError(t, db.Create(&order).Error)
	customer := models.Customer{Name: "Amina Yusuf", Phone: "+254711000001", TotalOrders: 2}

	notification, err := svc.NotifyNewOrder(context.Background(), &order, &customer)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationTypeNewOrder, notification.Type)
	assert.Contains(t, notification.Title, "⭐")
	assert.Contains(t, notification.Title, "ORD-AB12CD34")
	assert.False(t, notification.Read)

	require.Len(t, relay.channels, 1)
	assert.Equal(t, "admin-orders", relay.channels[0])
	assert.Equal(t, "new-order", relay.events[0])

	var count int64
	db.Model(&models.AdminNotification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNotifyNewOrderSurvivesRelayFailure(t *testing.T) {
	db := openTestDB(t)
	relay := &fakeRelay{
		publishFunc: func(ctx context.Context, channel, event string, payload any) error {
			return errors.New("relay unreachable")
		},
	}
	svc := NewNotificationService(db, relay, nil, nil, zap.NewNop())

	order := models.Order{Reference: "ORD-FF00AA11", TotalCents: 1200, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	notification, err := svc.NotifyNewOrder(context.Background(), &order, nil)
	require.NoError(t, err)
	assert.Contains(t, notification.Title, "🆕")
}

func TestBroadcastPushDropsGoneSubscriptions(t *testing.T) {
	db := openTestDB(t)

	endpoints := []string{
		"https://push.example.com/sub/alive-1",
		"https://push.example.com/sub/gone",
		"https://push.example.com/sub/alive-2",
	}
	for _, e := range endpoints {
		require.NoError(t, db.Create(&models.PushSubscription{Endpoint: e, P256dh: "p", Auth: "a"}).Error)
	}

	push := &fakePush{
		sendFunc: func(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error) {
			if sub.Endpoint == "https://push.example.com/sub/gone" {
				return 410, nil
			}
			return 201, nil
		},
	}
	svc := NewNotificationService(db, nil, push, nil, zap.NewNop())

	result := svc.BroadcastPush(context.Background(), []byte(`{"event":"new-order"}`))

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total)

	var remaining []models.PushSubscription
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, sub := range remaining {
		assert.NotEqual(t, "https://push.example.com/sub/gone", sub.Endpoint)
	}
}

func TestBroadcastPushKeepsSubscriptionOnTransientFailure(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.PushSubscription{Endpoint: "https://push.example.com/sub/flaky", P256dh: "p", Auth: "a"}).Error)

	push := &fakePush{
		sendFunc: func(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error) {
			return 0, errors.New("connection reset")
		},
	}
	svc := NewNotificationService(db, nil, push, nil, zap.NewNop())

	result := svc.BroadcastPush(context.Background(), []byte(`{}`))
	assert.Equal(t, PushResult{Sent: 0, Failed: 1, Total: 1}, result)

	var count int64
	db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListReturnsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil, nil, nil, zap.NewNop())

	t1 := time.Now().Add(-2 * time.Hour)
	t2 := time.Now().Add(-1 * time.Hour)
	first := models.AdminNotification{Type: "new-order", Title: "older"}
	first.CreatedAt = t1
	second := models.AdminNotification{Type: "new-order", Title: "newer"}
	second.CreatedAt = t2
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	notifications, err := svc.List(10, false)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "newer", notifications[0].Title)
	assert.Equal(t, "older", notifications[1].Title)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil, nil, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.AdminNotification{Type: "new-order", Title: "n"}).Error)
	}

	count, err := svc.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	unread, err := svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	count, err = svc.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	unread, err = svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestMarkReadRefreshesReadAt(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil, nil, nil, zap.NewNop())

	notification := models.AdminNotification{Type: "new-order", Title: "n"}
	require.NoError(t, db.Create(&notification).Error)

	require.NoError(t, svc.MarkRead(notification.ID))
	require.NoError(t, svc.MarkRead(notification.ID))

	var reloaded models.AdminNotification
	require.NoError(t, db.First(&reloaded, notification.ID).Error)
	assert.True(t, reloaded.Read)
	assert.NotNil(t, reloaded.ReadAt)

	assert.ErrorIs(t, svc.MarkRead(9999), ErrNotFound)
}

func TestDeleteNotification(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil, nil, nil, zap.NewNop())

	notification := models.AdminNotification{Type: "new-order", Title: "n"}
	require.NoError(t, db.Create(&notification).Error)

	require.NoError(t, svc.Delete(notification.ID))
	assert.ErrorIs(t, svc.Delete(notification.ID), ErrNotFound)
}

func TestPushSubscriptionRoundTrip(t *testing.T) {
	db := openTestDB(t)

	sub := models.PushSubscription{
		Endpoint: "https://push.example.com/sub/rt",
		P256dh:   "BNcRdreALRFXTkOOUHK1EtK2wtaz5Ry4YfYCA_0QTpQtUbVlUls0VJXg7A8u-Ts1XbjhazAkj7I99e8QcYP7DkM",
		Auth:     "tBHItJI5svbpez7KI4CCXg",
		UserID:   4,
	}
	require.NoError(t, db.Create(&sub).Error)

	var found models.PushSubscription
	require.NoError(t, db.Where("endpoint = ?", sub.Endpoint).First(&found).Error)
	assert.Equal(t, sub.P256dh, found.P256dh)
	assert.Equal(t, sub.Auth, found.Auth)

	result := db.Unscoped().Where("endpoint = ?", sub.Endpoint).Delete(&models.PushSubscription{})
	require.NoError(t, result.Error)
	assert.Equal(t, int64(1), result.RowsAffected)
}
