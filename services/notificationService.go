package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
	"github.com/sokoni-store/sokoni-api/notify"
)

// PushResult summarizes one broadcast attempt. It is reported, never raised.
type PushResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// NotificationService persists admin notifications and fans them out over
// the available transports. Any of relay, push and events may be nil, and
// every transport failure is logged and swallowed: the triggering request
// never fails because a broadcast did.
type NotificationService struct {
	db     *gorm.DB
	relay  notify.Relay
	push   notify.PushSender
	events notify.EventProducer
	log    *zap.Logger
}

func NewNotificationService(db *gorm.DB, relay notify.Relay, push notify.PushSender, events notify.EventProducer, log *zap.Logger) *NotificationService {
	return &NotificationService{db: db, relay: relay, push: push, events: events, log: log}
}

type orderSummary struct {
	OrderID    uint   `json:"orderId"`
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	TotalCents int64  `json:"totalCents"`
	Customer   string `json:"customer"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	TierGlyph  string `json:"tierGlyph"`
}

// NotifyNewOrder writes the notification row, then attempts the relay, push
// and event-stream broadcasts independently.
func (s *NotificationService) NotifyNewOrder(ctx context.Context, order *models.Order, customer *models.Customer) (*models.AdminNotification, error) {
	totalOrders := 0
	name := order.CustomerName
	if customer != nil {
		totalOrders = customer.TotalOrders
		if customer.Name != "" {
			name = customer.Name
		}
	}
	glyph := TierGlyph(totalOrders)

	summary := orderSummary{
		OrderID:    order.ID,
		Reference:  order.Reference,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		Customer:   name,
		Phone:      order.Phone,
		City:       order.City,
		TierGlyph:  glyph,
	}
	payload, _ := json.Marshal(summary)

	notification := models.AdminNotification{
		Type:    models.NotificationTypeNewOrder,
		Title:   fmt.Sprintf("%s New order %s", glyph, order.Reference),
		Message: fmt.Sprintf("%s placed an order for KES %.2f", name, float64(order.TotalCents)/100),
		Payload: datatypes.JSON(payload),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	if s.relay != nil {
		if err := s.relay.Publish(ctx, notify.OrdersChannel, "new-order", summary); err != nil {
			s.log.Warn("Realtime relay publish failed", zap.String("reference", order.Reference), zap.Error(err))
		}
	}

	result := s.BroadcastPush(ctx, payload)
	if result.Total > 0 {
		s.log.Info("Push broadcast finished",
			zap.Int("sent", result.Sent), zap.Int("failed", result.Failed), zap.Int("total", result.Total))
	}

	if s.events != nil {
		if err := s.events.Emit(ctx, "new-order", summary); err != nil {
			s.log.Warn("Order event emit failed", zap.String("reference", order.Reference), zap.Error(err))
		}
	}

	return &notification, nil
}

// BroadcastPush sends one payload to every registered subscription. A 404
// or 410 from the transport means the endpoint is gone: that subscription
// row is deleted and the attempt counted as failed. Other failures are
// counted but the subscription is kept.
func (s *NotificationService) BroadcastPush(ctx context.Context, payload []byte) PushResult {
	var result PushResult
	if s.push == nil {
		return result
	}

	var subs []models.PushSubscription
	if err := s.db.Find(&subs).Error; err != nil {
		s.log.Warn("Could not load push subscriptions", zap.Error(err))
		return result
	}
	result.Total = len(subs)

	for _, sub := range subs {
		code, err := s.push.Send(ctx, sub, payload)
		switch {
		case err != nil:
			result.Failed++
			s.log.Warn("Push send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		case code == 404 || code == 410:
			result.Failed++
			if err := s.db.Unscoped().Delete(&models.PushSubscription{}, sub.ID).Error; err != nil {
				s.log.Warn("Could not remove dead push subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
			}
		case code >= 400:
			result.Failed++
		default:
			result.Sent++
		}
	}
	return result
}

// List returns notifications newest first.
func (s *NotificationService) List(limit int, unreadOnly bool) ([]models.AdminNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := s.db.Order("created_at desc, id desc").Limit(limit)
	if unreadOnly {
		query = query.Where("`read` = ?", false)
	}
	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.AdminNotification{}).Where("`read` = ?", false).Count(&count).Error
	return count, err
}

// MarkRead is idempotent: re-marking a read notification just refreshes ReadAt.
func (s *NotificationService) MarkRead(id uint) error {
	var notification models.AdminNotification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	now := time.Now()
	return s.db.Model(&notification).Updates(map[string]any{"read": true, "read_at": now}).Error
}

// MarkAllRead returns how many rows actually flipped from unread to read,
// so a second call reports zero.
func (s *NotificationService) MarkAllRead() (int64, error) {
	now := time.Now()
	result := s.db.Model(&models.AdminNotification{}).
		Where("`read` = ?", false).
		Updates(map[string]any{"read": true, "read_at": now})
	return result.RowsAffected, result.Error
}

func (s *NotificationService) Delete(id uint) error {
	result := s.db.Delete(&models.AdminNotification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
