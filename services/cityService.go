package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sokoni-store/sokoni-api/store"
)

const citiesKey = "shipping:cities"

var defaultCities = []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret"}

// CityService keeps the selectable shipping cities in the shared store
// instead of process memory, so every instance serves the same list.
type CityService struct {
	store store.Store
}

func NewCityService(s store.Store) *CityService {
	return &CityService{store: s}
}

func (s *CityService) Cities(ctx context.Context) ([]string, error) {
	raw, err := s.store.Get(ctx, citiesKey)
	if errors.Is(err, store.ErrNotFound) {
		return defaultCities, nil
	}
	if err != nil {
		return nil, err
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (s *CityService) SetCities(ctx context.Context, cities []string) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, citiesKey, string(raw), 0)
}
