package storage

import (
	"fmt"
	"os"

	"facegate/internal/access"
)

// Disk reads stored blobs from the local filesystem.
type Disk struct{}

// NewDisk creates a filesystem-backed storage reader.
func NewDisk() *Disk {
	return &Disk{}
}

// ReadBytes returns the contents of path. A missing file is reported as
// access.ErrNotFound.
func (d *Disk) ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", access.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Disabled is the storage reader used when persistent storage is turned off.
type Disabled struct{}

func (Disabled) ReadBytes(path string) ([]byte, error) {
	return nil, access.ErrUnavailable
}
