package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationTypeNewOrder    = "new-order"
	NotificationTypeAdminAction = "admin-action"
	NotificationTypeLowStock    = "low-stock"
)

type AdminNotification struct {
	gorm.Model
	Type    string         `json:"type" gorm:"size:32;index"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Payload datatypes.JSON `json:"payload"`
	Read    bool           `json:"read" gorm:"index"`
	ReadAt  *time.Time     `json:"readAt"`
}

type PushSubscription struct {
	gorm.Model
	Endpoint string `json:"endpoint" gorm:"size:512;uniqueIndex"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
	UserID   uint   `json:"userId"`
}
