package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoni-store/sokoni-api/models"
)

func TestApplyOrderCreatesCustomerOnFirstOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewCustomerService(db)

	customer, err := svc.ApplyOrder("Amina Yusuf", "+254711000001", "amina@example.com", "Mombasa", 4200)
	require.NoError(t, err)

	assert.Equal(t, 1, customer.TotalOrders)
	assert.Equal(t, int64(4200), customer.TotalSpentCents)
	assert.Contains(t, Tags(customer), "New")

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyOrderBumpsAggregatesAndTier(t *testing.T) {
	db := openTestDB(t)
	svc := NewCustomerService(db)

	seed := models.Customer{Name: "Amina Yusuf", Phone: "+254711000001", TotalOrders: 1, TotalSpentCents: 3000}
	require.NoError(t, db.Create(&seed).Error)

	customer, err := svc.ApplyOrder("Amina Yusuf", "+254711000001", "", "", 5000)
	require.NoError(t, err)

	assert.Equal(t, 2, customer.TotalOrders)
	assert.Equal(t, int64(8000), customer.TotalSpentCents)
	assert.Contains(t, Tags(customer), "Regular")
	assert.NotContains(t, Tags(customer), "New")
	assert.Equal(t, "⭐", TierGlyph(customer.TotalOrders))

	// no second row for the same phone
	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyOrderHighValueOverlay(t *testing.T) {
	db := openTestDB(t)
	svc := NewCustomerService(db)

	seed := models.Customer{Phone: "+254711000002", TotalOrders: 2, TotalSpentCents: 99000}
	require.NoError(t, db.Create(&seed).Error)

	customer, err := svc.ApplyOrder("", "+254711000002", "", "", 2000)
	require.NoError(t, err)

	tags := Tags(customer)
	assert.Contains(t, tags, "Regular")
	assert.Contains(t, tags, "High-Value")
}

func TestTierGlyphThresholds(t *testing.T) {
	cases := []struct {
		orders int
		glyph  string
	}{
		{0, "🆕"},
		{1, "🆕"},
		{2, "⭐"},
		{4, "⭐"},
		{5, "💎"},
		{9, "💎"},
		{10, "👑"},
		{25, "👑"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.glyph, TierGlyph(tc.orders), "orders=%d", tc.orders)
	}
}

func TestTierTagsThresholds(t *testing.T) {
	assert.Equal(t, []string{"New"}, tierTags(1, 0))
	assert.Equal(t, []string{"Regular"}, tierTags(2, 0))
	assert.Equal(t, []string{"VIP"}, tierTags(5, 0))
	assert.Equal(t, []string{"Premium"}, tierTags(10, 0))
	assert.Equal(t, []string{"Premium", "High-Value"}, tierTags(12, 150000))
}
