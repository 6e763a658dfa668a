package controllers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/notify"
	"github.com/sokoni-store/sokoni-api/services"
	"github.com/sokoni-store/sokoni-api/store"
)

// Package-level service handles, wired once from main.
var (
	Audit     *services.AuditService
	Orders    *services.OrderService
	Customers *services.CustomerService
	Notifier  *services.NotificationService
	Checkout  *services.CheckoutService
	Cities    *services.CityService
	WebPush   *notify.WebPushSender
	KV        store.Store
	Log       *zap.Logger
)

func Setup(db *gorm.DB, relay notify.Relay, push *notify.WebPushSender, events notify.EventProducer, kv store.Store, log *zap.Logger) {
	Audit = services.NewAuditService(db)
	Orders = services.NewOrderService(db, Audit, log)
	Customers = services.NewCustomerService(db)
	Notifier = services.NewNotificationService(db, relay, push, events, log)
	Checkout = services.NewCheckoutService(db, Customers, Notifier, log)
	Cities = services.NewCityService(kv)
	WebPush = push
	KV = kv
	Log = log
}
