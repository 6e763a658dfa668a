package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Order line items are snapshotted at checkout: name and unit price are
// copied from the variant, never joined back live.
type Order struct {
	gorm.Model
	Reference     string `json:"reference" gorm:"size:24;uniqueIndex"`
	CustomerID    *uint  `json:"customerId" gorm:"index"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	City          string `json:"city"`
	PaymentMethod string `json:"paymentMethod"`

	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`

	Status string `json:"status" gorm:"size:16;default:'pending';index"`

	ConfirmedBy *uint      `json:"confirmedBy"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	ShippedBy   *uint      `json:"shippedBy"`
	ShippedAt   *time.Time `json:"shippedAt"`
	DeliveredBy *uint      `json:"deliveredBy"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	CancelledBy *uint      `json:"cancelledBy"`
	CancelledAt *time.Time `json:"cancelledAt"`
	RefundedBy  *uint      `json:"refundedBy"`
	RefundedAt  *time.Time `json:"refundedAt"`

	UpdatedBy    uint   `json:"updatedBy"`
	AdminNotes   string `json:"adminNotes"`
	RefundReason string `json:"refundReason"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID        uint   `json:"orderId"`
	ProductID      uint   `json:"productId"`
	VariantID      uint   `json:"variantId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}
