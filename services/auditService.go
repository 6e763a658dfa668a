package services

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

// Audit categories, derived from the action code on read and never stored.
const (
	CategoryDataChange        = "DATA_CHANGE"
	CategoryExternalAction    = "EXTERNAL_ACTION"
	CategoryContentManagement = "CONTENT_MANAGEMENT"
	CategorySystem            = "SYSTEM"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one immutable audit entry. Callers treat failures as
// logging noise: catch and log, never abort the triggering request.
func (s *AuditService) Record(actorID uint, action, entityType string, entityID uint, oldValue, newValue any, description string) error {
	entry := models.AuditLogEntry{
		ActorID:     actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}

	if oldValue != nil {
		if raw, err := json.Marshal(oldValue); err == nil {
			entry.OldValue = datatypes.JSON(raw)
		}
	}
	if newValue != nil {
		if raw, err := json.Marshal(newValue); err == nil {
			entry.NewValue = datatypes.JSON(raw)
		}
	}

	return s.db.Create(&entry).Error
}

// QueryRecent returns the newest entries first. entityType and actorID are
// optional filters; zero values mean "any".
func (s *AuditService) QueryRecent(limit int, entityType string, actorID uint) ([]models.AuditLogEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Order("created_at desc, id desc").Limit(limit)
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if actorID != 0 {
		query = query.Where("actor_id = ?", actorID)
	}

	var entries []models.AuditLogEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// QueryForEntity is the timeline view: the full ordered history of one entity.
func (s *AuditService) QueryForEntity(entityType string, entityID uint) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := s.db.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

type ActorActivity struct {
	ActorID    uint      `json:"actorId"`
	Actions    int64     `json:"actions"`
	LastAction time.Time `json:"lastAction"`
}

// AggregateByActor has no pagination; the admin user count is small.
func (s *AuditService) AggregateByActor() ([]ActorActivity, error) {
	var rows []ActorActivity
	err := s.db.Model(&models.AuditLogEntry{}).
		Select("actor_id, count(*) as actions, max(created_at) as last_action").
		Group("actor_id").
		Order("actions desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryForAction classifies a dot-namespaced action code by substring.
func CategoryForAction(action string) string {
	a := strings.ToLower(action)
	switch {
	case strings.Contains(a, "whatsapp"), strings.Contains(a, "phone"), strings.Contains(a, "email"):
		return CategoryExternalAction
	case strings.Contains(a, "hero"), strings.Contains(a, "carousel"),
		strings.Contains(a, "collection"), strings.Contains(a, "archive"):
		return CategoryContentManagement
	case strings.Contains(a, "login"), strings.Contains(a, "logout"), strings.Contains(a, "system"):
		return CategorySystem
	default:
		return CategoryDataChange
	}
}
