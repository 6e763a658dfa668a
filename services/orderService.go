package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

// allowedTransitions is the explicit status graph. cancelled and refunded
// are terminal.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusRefunded},
	models.OrderStatusShipped:   {models.OrderStatusDelivered, models.OrderStatusRefunded},
	models.OrderStatusDelivered: {models.OrderStatusRefunded},
	models.OrderStatusCancelled: {},
	models.OrderStatusRefunded:  {},
}

func IsValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type TransitionInput struct {
	Status       string
	AdminNotes   *string
	RefundReason *string
}

type OrderService struct {
	db    *gorm.DB
	audit *AuditService
	log   *zap.Logger
}

func NewOrderService(db *gorm.DB, audit *AuditService, log *zap.Logger) *OrderService {
	return &OrderService{db: db, audit: audit, log: log}
}

// Transition applies an admin order update. Status is validated before any
// read or write; supplying the order's current status is a no-op for the
// status fields and produces no audit entry. A real status change stamps
// exactly one <status>By/<status>At pair and appends one audit entry; a
// notes change appends a second, independent entry. Audit failures are
// logged and never fail the update.
func (s *OrderService) Transition(orderID, actorID uint, in TransitionInput) (*models.Order, error) {
	if in.Status != "" && !IsValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{"updated_by": actorID}

	oldStatus := order.Status
	statusChanged := in.Status != "" && in.Status != oldStatus
	if statusChanged {
		if !canTransition(oldStatus, in.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, in.Status)
		}
		updates["status"] = in.Status
		switch in.Status {
		case models.OrderStatusConfirmed:
			updates["confirmed_by"] = actorID
			updates["confirmed_at"] = now
		case models.OrderStatusShipped:
			updates["shipped_by"] = actorID
			updates["shipped_at"] = now
		case models.OrderStatusDelivered:
			updates["delivered_by"] = actorID
			updates["delivered_at"] = now
		case models.OrderStatusCancelled:
			updates["cancelled_by"] = actorID
			updates["cancelled_at"] = now
		case models.OrderStatusRefunded:
			updates["refunded_by"] = actorID
			updates["refunded_at"] = now
		}
	}

	oldNotes := order.AdminNotes
	notesChanged := in.AdminNotes != nil && *in.AdminNotes != oldNotes
	if notesChanged {
		updates["admin_notes"] = *in.AdminNotes
	}
	if in.RefundReason != nil {
		updates["refund_reason"] = *in.RefundReason
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}

	if statusChanged {
		err := s.audit.Record(actorID, "order."+in.Status, "order", order.ID,
			map[string]string{"status": oldStatus},
			map[string]string{"status": in.Status},
			fmt.Sprintf("Order %s marked %s", order.Reference, in.Status))
		if err != nil {
			s.log.Warn("Audit write failed for order status change", zap.Uint("orderId", order.ID), zap.Error(err))
		}
	}
	if notesChanged {
		err := s.audit.Record(actorID, "order.notes", "order", order.ID,
			map[string]string{"adminNotes": oldNotes},
			map[string]string{"adminNotes": *in.AdminNotes},
			fmt.Sprintf("Notes updated on order %s", order.Reference))
		if err != nil {
			s.log.Warn("Audit write failed for order notes change", zap.Uint("orderId", order.ID), zap.Error(err))
		}
	}

	var updated models.Order
	if err := s.db.Preload("Items").First(&updated, orderID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}
