package access

import (
	"errors"
	"image"

	"facegate/internal/models"
)

// Decision is the outcome of one recognition cycle.
type Decision int

const (
	Denied Decision = iota
	Granted
)

func (d Decision) String() string {
	if d == Granted {
		return "granted"
	}
	return "denied"
}

// ErrUnavailable is returned by collaborators whose capability is disabled
// in the configuration. It is not treated as a failure.
var ErrUnavailable = errors.New("capability unavailable")

// ErrNotFound is returned by Storage when the requested path does not exist.
var ErrNotFound = errors.New("not found")

// Frame is one captured camera frame. The owner must release it with Close
// once the cycle is finished with it.
type Frame interface {
	Close() error
}

// AlignedFace is a normalized face representation ready for matching.
// The enrolled reference face is the one long-lived AlignedFace; all others
// are closed immediately after scoring.
type AlignedFace interface {
	Close() error
}

// Camera supplies frames, one per cycle.
type Camera interface {
	Acquire() (Frame, error)
}

// Engine is the detection/embedding inference capability.
type Engine interface {
	// Decode turns stored image bytes into a Frame.
	Decode(data []byte) (Frame, error)
	// Detect returns face regions in detection order. An empty result is
	// not an error.
	Detect(f Frame) ([]image.Rectangle, error)
	// Align normalizes one detected region for matching.
	Align(f Frame, region image.Rectangle) (AlignedFace, error)
	// Similarity scores an aligned face against the reference.
	Similarity(face, reference AlignedFace) (float64, error)
}

// Storage reads stored blobs such as the enrollment image.
type Storage interface {
	ReadBytes(path string) ([]byte, error)
}

// Telemetry reports one cycle's status. Failures are logged, never retried.
type Telemetry interface {
	Report(lat, lng float64, accessStatus, intruderAlert int) error
}

// Alerter delivers the escalation notification. Best-effort single attempt.
type Alerter interface {
	Send(recipient, subject, body string) error
}

// Display shows two lines of status on the local panel.
type Display interface {
	Show(line1, line2 string)
}

// EventLog persists access events.
type EventLog interface {
	Insert(ev *models.AccessEvent) (int64, error)
}

// Publisher pushes access events to live consumers (dashboard).
type Publisher interface {
	Publish(ev *models.AccessEvent)
}

// Collaborators groups the external capabilities consumed by the Controller.
// Disabled capabilities are wired as no-op implementations, not left nil.
type Collaborators struct {
	Camera    Camera
	Engine    Engine
	Storage   Storage
	Telemetry Telemetry
	Alerter   Alerter
	Display   Display
	Events    EventLog
	Publisher Publisher
}
