package models

import "gorm.io/gorm"

type NewsletterSubscriber struct {
	gorm.Model
	Email string `json:"email" gorm:"size:254;uniqueIndex" binding:"required,email"`
	Name  string `json:"name"`
}
