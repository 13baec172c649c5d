package models

import "time"

// AccessEvent records the outcome of one recognition cycle.
type AccessEvent struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Granted       bool      `json:"granted"`
	Score         float64   `json:"score"`
	Faces         int       `json:"faces"`
	IntruderAlert bool      `json:"intruderAlert"`
}
