package repository

import (
	"facegate/internal/access"
	"facegate/internal/models"
)

// EventRepository defines the interface for access-event persistence.
type EventRepository interface {
	// Create operations
	Insert(ev *models.AccessEvent) (int64, error)

	// Read operations
	GetRecent(limit int) ([]models.AccessEvent, error)
	GetTotalCount() (int, error)

	// Delete operations
	DeleteAll() error
}

// Disabled is the event repository used when persistent storage is turned
// off. Writes report the capability as unavailable; reads return nothing.
type Disabled struct{}

func (Disabled) Insert(ev *models.AccessEvent) (int64, error) {
	return 0, access.ErrUnavailable
}

func (Disabled) GetRecent(limit int) ([]models.AccessEvent, error) {
	return nil, nil
}

func (Disabled) GetTotalCount() (int, error) {
	return 0, nil
}

func (Disabled) DeleteAll() error {
	return nil
}
