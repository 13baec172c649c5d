package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"facegate/internal/access"
)

func TestDisk_ReadBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user1.jpg")
	if err := os.WriteFile(path, []byte("image bytes"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := NewDisk().ReadBytes(path)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("ReadBytes = %q", data)
	}
}

func TestDisk_MissingFileIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jpg")

	_, err := NewDisk().ReadBytes(path)
	if !errors.Is(err, access.ErrNotFound) {
		t.Errorf("ReadBytes error = %v, expected ErrNotFound", err)
	}
}

func TestDisabled_ReportsUnavailable(t *testing.T) {
	_, err := Disabled{}.ReadBytes("/faces/user1.jpg")
	if !errors.Is(err, access.ErrUnavailable) {
		t.Errorf("Disabled.ReadBytes = %v, expected ErrUnavailable", err)
	}
}
