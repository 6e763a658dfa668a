package initializers

import (
	"log"

	"github.com/sokoni-store/sokoni-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
		&models.AdminNotification{},
		&models.AuditLogEntry{},
		&models.PushSubscription{},
		&models.NewsletterSubscriber{},
	)
	log.Println("Database synced successfully.")
}
