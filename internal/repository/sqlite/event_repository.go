package sqlite

import (
	"fmt"

	"facegate/internal/models"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite access-event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a new access event to the database.
func (r *EventRepository) Insert(ev *models.AccessEvent) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO access_events (timestamp, granted, score, faces, intruder_alert)
		VALUES (?, ?, ?, ?, ?)
	`, ev.Timestamp, boolToInt(ev.Granted), ev.Score, ev.Faces, boolToInt(ev.IntruderAlert))
	if err != nil {
		return 0, fmt.Errorf("failed to insert access event: %w", err)
	}

	return result.LastInsertId()
}

// GetRecent retrieves the most recent access events, newest first.
func (r *EventRepository) GetRecent(limit int) ([]models.AccessEvent, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, timestamp, granted, score, faces, intruder_alert
		FROM access_events ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query access events: %w", err)
	}
	defer rows.Close()

	var events []models.AccessEvent
	for rows.Next() {
		var ev models.AccessEvent
		var granted, intruder int
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &granted, &ev.Score, &ev.Faces, &intruder); err != nil {
			return nil, fmt.Errorf("failed to scan access event: %w", err)
		}
		ev.Granted = granted != 0
		ev.IntruderAlert = intruder != 0
		events = append(events, ev)
	}

	return events, rows.Err()
}

// GetTotalCount returns the number of stored access events.
func (r *EventRepository) GetTotalCount() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM access_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count access events: %w", err)
	}
	return count, nil
}

// DeleteAll removes every stored access event.
func (r *EventRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM access_events`); err != nil {
		return fmt.Errorf("failed to delete access events: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
