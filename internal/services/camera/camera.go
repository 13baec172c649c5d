package camera

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"facegate/internal/access"
	"facegate/internal/logger"
	"facegate/internal/services/vision"
)

// ErrCaptureFailed is returned when the device cannot supply a frame.
var ErrCaptureFailed = errors.New("camera capture failed")

// Device acquires frames from a local video capture device.
type Device struct {
	capture *gocv.VideoCapture
	logger  *logger.Logger
}

// Open opens the capture device.
func Open(deviceID int, logger *logger.Logger) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", deviceID, err)
	}

	logger.Info("Camera %d opened", deviceID)
	return &Device{capture: capture, logger: logger}, nil
}

// Acquire reads one frame. The caller owns the returned frame and must
// Close it on every exit path.
func (d *Device) Acquire() (access.Frame, error) {
	mat := gocv.NewMat()
	if !d.capture.Read(&mat) {
		mat.Close()
		return nil, ErrCaptureFailed
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: empty frame", ErrCaptureFailed)
	}
	return vision.NewFrame(mat), nil
}

// Close releases the capture device.
func (d *Device) Close() error {
	return d.capture.Close()
}

// Unavailable is a camera whose hardware initialization failed. Every
// Acquire fails, so every cycle is skipped while the process keeps serving.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Acquire() (access.Frame, error) {
	return nil, fmt.Errorf("camera unavailable: %w", u.Reason)
}
