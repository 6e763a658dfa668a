package models

import "gorm.io/gorm"

const (
	RoleViewer     = "VIEWER"
	RoleManager    = "MANAGER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// RoleLevel orders roles for the middleware gate; unknown roles rank below
// VIEWER and are denied everywhere.
var RoleLevel = map[string]int{
	RoleViewer:     1,
	RoleManager:    2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

type User struct {
	gorm.Model
	Fullname        string `json:"fullname"`
	Username        string `json:"username" gorm:"size:64;uniqueIndex"`
	Email           string `json:"email" gorm:"size:254;uniqueIndex"`
	Phone           string `json:"phone"`
	Password        string `json:"-"`
	Role            string `json:"role" gorm:"size:16;default:'VIEWER'"`
	SubscribeToNews bool   `json:"subscribeToNews"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
