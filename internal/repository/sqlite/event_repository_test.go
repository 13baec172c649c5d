package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"facegate/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file should exist")
	}
	return db
}

func TestEventRepository_InsertAndGetRecent(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []*models.AccessEvent{
		{Timestamp: base, Granted: false, Faces: 0},
		{Timestamp: base.Add(2 * time.Second), Granted: false, Faces: 1, Score: 0.4},
		{Timestamp: base.Add(4 * time.Second), Granted: true, Faces: 1, Score: 0.87},
	}

	for _, ev := range events {
		id, err := repo.Insert(ev)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("Insert returned id %d", id)
		}
	}

	recent, err := repo.GetRecent(2)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("GetRecent returned %d events, expected 2", len(recent))
	}
	if !recent[0].Granted || recent[0].Score != 0.87 {
		t.Errorf("Newest event = %+v, expected the granted one first", recent[0])
	}
	if recent[1].Granted {
		t.Errorf("Second event should be denied: %+v", recent[1])
	}
}

func TestEventRepository_IntruderAlertRoundTrip(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))

	ev := &models.AccessEvent{
		Timestamp:     time.Now().UTC(),
		Granted:       false,
		Faces:         1,
		IntruderAlert: true,
	}
	if _, err := repo.Insert(ev); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	recent, err := repo.GetRecent(1)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("GetRecent returned %d events", len(recent))
	}
	if !recent[0].IntruderAlert {
		t.Error("IntruderAlert flag lost in round trip")
	}
	if recent[0].Granted {
		t.Error("Granted flag should be false")
	}
}

func TestEventRepository_CountAndDeleteAll(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))

	for i := 0; i < 5; i++ {
		ev := &models.AccessEvent{Timestamp: time.Now().UTC()}
		if _, err := repo.Insert(ev); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	count, err := repo.GetTotalCount()
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, expected 5", count)
	}

	if err := repo.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	count, err = repo.GetTotalCount()
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count after DeleteAll = %d, expected 0", count)
	}
}

func TestEventRepository_GetRecentEmpty(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))

	recent, err := repo.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("GetRecent on empty table returned %d events", len(recent))
	}
}
