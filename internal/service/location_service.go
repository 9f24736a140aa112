package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spotfinder/internal/metrics"
	"spotfinder/internal/models"
)

// ErrInvalidInput is returned when a required field is missing. The store is
// never called in that case.
var ErrInvalidInput = errors.New("invalid input")

// LocationService is the boundary between presentation code and the location store
type LocationService struct {
	repo LocationRepository
}

// LocationRepository interface for dependency injection
type LocationRepository interface {
	Insert(ctx context.Context, address string, lat, lng float64) (bool, error)
	FindByAddress(ctx context.Context, address string) (*models.Location, error)
	Update(ctx context.Context, address string, lat, lng float64) (bool, error)
	Delete(ctx context.Context, address string) (bool, error)
	SearchPrefix(ctx context.Context, prefix string) ([]string, error)
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Find looks up a location by address. A nil location with a nil error means
// the address is unknown.
func (s *LocationService) Find(ctx context.Context, address string) (*models.Location, error) {
	if err := requireAddress("find", address); err != nil {
		return nil, err
	}

	location, err := s.repo.FindByAddress(ctx, address)
	if err != nil {
		metrics.Observe("find", metrics.OutcomeError)
		return nil, fmt.Errorf("service: failed to find location: %w", err)
	}

	if location == nil {
		metrics.Observe("find", metrics.OutcomeNotFound)
		return nil, nil
	}

	metrics.Observe("find", metrics.OutcomeOK)
	return location, nil
}

// Add stores a new location. It returns false when the address already exists.
func (s *LocationService) Add(ctx context.Context, address string, lat, lng float64) (bool, error) {
	if err := requireAddress("add", address); err != nil {
		return false, err
	}

	added, err := s.repo.Insert(ctx, address, lat, lng)
	if err != nil {
		metrics.Observe("add", metrics.OutcomeError)
		return false, fmt.Errorf("service: failed to add location: %w", err)
	}

	if !added {
		metrics.Observe("add", metrics.OutcomeDuplicate)
		return false, nil
	}

	metrics.Observe("add", metrics.OutcomeOK)
	return true, nil
}

// Update moves an existing location. It returns false when the address is unknown.
func (s *LocationService) Update(ctx context.Context, address string, lat, lng float64) (bool, error) {
	if err := requireAddress("update", address); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, address, lat, lng)
	if err != nil {
		metrics.Observe("update", metrics.OutcomeError)
		return false, fmt.Errorf("service: failed to update location: %w", err)
	}

	return observeFound("update", updated), nil
}

// Delete removes a location. It returns false when the address is unknown.
func (s *LocationService) Delete(ctx context.Context, address string) (bool, error) {
	if err := requireAddress("delete", address); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, address)
	if err != nil {
		metrics.Observe("delete", metrics.OutcomeError)
		return false, fmt.Errorf("service: failed to delete location: %w", err)
	}

	return observeFound("delete", deleted), nil
}

// Suggest returns address completions for a partially typed prefix.
func (s *LocationService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	suggestions, err := s.repo.SearchPrefix(ctx, prefix)
	if err != nil {
		metrics.Observe("suggest", metrics.OutcomeError)
		return nil, fmt.Errorf("service: failed to search addresses: %w", err)
	}

	metrics.Observe("suggest", metrics.OutcomeOK)
	return suggestions, nil
}

func requireAddress(operation, address string) error {
	if strings.TrimSpace(address) == "" {
		metrics.Observe(operation, metrics.OutcomeInvalid)
		return fmt.Errorf("service: %w: address cannot be empty", ErrInvalidInput)
	}
	return nil
}

func observeFound(operation string, found bool) bool {
	if found {
		metrics.Observe(operation, metrics.OutcomeOK)
	} else {
		metrics.Observe(operation, metrics.OutcomeNotFound)
	}
	return found
}
