package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

func newOrderFixture(t *testing.T, db *gorm.DB, status string) *models.Order {
	t.Helper()
	order := models.Order{
		Reference:  "ORD-TEST01",
		Phone:      "+254700000001",
		TotalCents: 5000,
		Status:     status,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, NewAuditService(db), zap.NewNop())
}

func auditCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.AuditLogEntry{}).Count(&count).Error)
	return count
}

func TestTransitionConfirmStampsActorAndAudits(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusPending)

	updated, err := svc.Transition(order.ID, 7, TransitionInput{Status: models.OrderStatusConfirmed})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
	require.NotNil(t, updated.ConfirmedBy)
	assert.Equal(t, uint(7), *updated.ConfirmedBy)
	assert.NotNil(t, updated.ConfirmedAt)
	assert.Equal(t, uint(7), updated.UpdatedBy)

	// only the requested pair is stamped
	assert.Nil(t, updated.ShippedAt)
	assert.Nil(t, updated.DeliveredAt)
	assert.Nil(t, updated.CancelledAt)
	assert.Nil(t, updated.RefundedAt)

	var entries []models.AuditLogEntry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "order.confirmed", entries[0].Action)
	assert.Equal(t, "order", entries[0].EntityType)
	assert.Equal(t, order.ID, entries[0].EntityID)
	assert.Equal(t, uint(7), entries[0].ActorID)
	assert.JSONEq(t, `{"status":"pending"}`, string(entries[0].OldValue))
	assert.JSONEq(t, `{"status":"confirmed"}`, string(entries[0].NewValue))
}

func TestTransitionShipFromConfirmed(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusConfirmed)

	updated, err := svc.Transition(order.ID, 3, TransitionInput{Status: models.OrderStatusShipped})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	require.NotNil(t, updated.ShippedBy)
	assert.Equal(t, uint(3), *updated.ShippedBy)
	assert.NotNil(t, updated.ShippedAt)

	var entry models.AuditLogEntry
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "order.shipped", entry.Action)
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusConfirmed)

	updated, err := svc.Transition(order.ID, 7, TransitionInput{Status: models.OrderStatusConfirmed})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
	assert.Nil(t, updated.ConfirmedAt)
	assert.Equal(t, int64(0), auditCount(t, db))
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusPending)

	_, err := svc.Transition(order.ID, 7, TransitionInput{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
	assert.Equal(t, int64(0), auditCount(t, db))
}

func TestTransitionRejectsDisallowedJump(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusPending)

	_, err := svc.Transition(order.ID, 7, TransitionInput{Status: models.OrderStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, int64(0), auditCount(t, db))
}

func TestTransitionTerminalStatesAreFinal(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)

	for _, terminal := range []string{models.OrderStatusCancelled, models.OrderStatusRefunded} {
		order := models.Order{Reference: "ORD-" + terminal, Status: terminal}
		require.NoError(t, db.Create(&order).Error)

		_, err := svc.Transition(order.ID, 7, TransitionInput{Status: models.OrderStatusConfirmed})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestTransitionNotesAuditedIndependently(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusPending)

	notes := "call before delivery"
	updated, err := svc.Transition(order.ID, 7, TransitionInput{
		Status:     models.OrderStatusConfirmed,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.AdminNotes)

	var entries []models.AuditLogEntry
	require.NoError(t, db.Order("id asc").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "order.confirmed", entries[0].Action)
	assert.Equal(t, "order.notes", entries[1].Action)

	// notes-only update appends a single notes entry
	notes2 := "left at gate"
	_, err = svc.Transition(order.ID, 7, TransitionInput{AdminNotes: &notes2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), auditCount(t, db))
}

func TestTransitionRefundReason(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)
	order := newOrderFixture(t, db, models.OrderStatusConfirmed)

	reason := "damaged in transit"
	updated, err := svc.Transition(order.ID, 9, TransitionInput{
		Status:       models.OrderStatusRefunded,
		RefundReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRefunded, updated.Status)
	assert.Equal(t, reason, updated.RefundReason)
	require.NotNil(t, updated.RefundedBy)
	assert.Equal(t, uint(9), *updated.RefundedBy)
}

func TestTransitionMissingOrder(t *testing.T) {
	db := openTestDB(t)
	svc := newOrderService(db)

	_, err := svc.Transition(9999, 7, TransitionInput{Status: models.OrderStatusConfirmed})
	assert.ErrorIs(t, err, ErrNotFound)
}
