package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/models"
)

// Tier thresholds. High-Value keys off lifetime spend and stacks on top of
// the order-count tier.
const (
	regularOrderThreshold = 2
	vipOrderThreshold     = 5
	premiumOrderThreshold = 10
	highValueSpendCents   = 100000
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// TierGlyph maps order count to the loyalty glyph shown in notification
// titles.
func TierGlyph(totalOrders int) string {
	switch {
	case totalOrders < regularOrderThreshold:
		return "🆕"
	case totalOrders < vipOrderThreshold:
		return "⭐"
	case totalOrders < premiumOrderThreshold:
		return "💎"
	default:
		return "👑"
	}
}

func tierTags(totalOrders int, totalSpentCents int64) []string {
	var tags []string
	switch {
	case totalOrders >= premiumOrderThreshold:
		tags = append(tags, "Premium")
	case totalOrders >= vipOrderThreshold:
		tags = append(tags, "VIP")
	case totalOrders >= regularOrderThreshold:
		tags = append(tags, "Regular")
	default:
		tags = append(tags, "New")
	}
	if totalSpentCents >= highValueSpendCents {
		tags = append(tags, "High-Value")
	}
	return tags
}

// ApplyOrder resolves the customer by phone (the natural key), creating the
// record on first order, then bumps the aggregate counters and recomputes
// the tier tags. The aggregates are a cache: a later cancellation or refund
// does not decrement them.
func (s *CustomerService) ApplyOrder(name, phone, email, city string, totalCents int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("phone = ?", phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{Name: name, Phone: phone, Email: email, City: city}
		if err := s.db.Create(&customer).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	customer.TotalOrders++
	customer.TotalSpentCents += totalCents
	if name != "" {
		customer.Name = name
	}
	if email != "" {
		customer.Email = email
	}
	if city != "" {
		customer.City = city
	}

	raw, _ := json.Marshal(tierTags(customer.TotalOrders, customer.TotalSpentCents))
	customer.Tags = datatypes.JSON(raw)

	if err := s.db.Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Tags decodes the stored tag set.
func Tags(c *models.Customer) []string {
	var tags []string
	if len(c.Tags) > 0 {
		json.Unmarshal(c.Tags, &tags)
	}
	return tags
}
