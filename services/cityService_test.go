package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoni-store/sokoni-api/store"
)

func TestCitiesFallBackToDefaults(t *testing.T) {
	svc := NewCityService(store.NewMemoryStore())

	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultCities, cities)
}

func TestSetCitiesRoundTrip(t *testing.T) {
	svc := NewCityService(store.NewMemoryStore())

	want := []string{"Nairobi", "Thika", "Machakos"}
	require.NoError(t, svc.SetCities(context.Background(), want))

	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, cities)
}
