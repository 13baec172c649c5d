package access

import (
	"errors"
	"fmt"
	"image"
	"time"

	"facegate/internal/config"
	"facegate/internal/logger"
	"facegate/internal/models"
)

const alertSubject = "Intruder Alert!"

// CycleResult summarizes one completed recognition cycle.
type CycleResult struct {
	Decision   Decision
	AlertFired bool
	Faces      int
	Score      float64
}

// Controller owns the process-wide recognition state: the enrolled reference
// face and the consecutive-denial tracker. One cycle runs to completion before
// the next begins; the controller is not safe for concurrent RunCycle calls
// and does not need to be.
type Controller struct {
	cfg  *config.Config
	log  *logger.Logger
	deps Collaborators

	tracker   *Tracker
	reference AlignedFace
}

// NewController wires a controller from its collaborators. Disabled
// capabilities must already be represented by no-op implementations.
func NewController(cfg *config.Config, log *logger.Logger, deps Collaborators) *Controller {
	return &Controller{
		cfg:     cfg,
		log:     log,
		deps:    deps,
		tracker: NewTracker(cfg.MaxAttempts),
	}
}

// Enroll loads the reference face from the configured enrollment image.
// On failure the controller keeps running without a reference and every
// subsequent decision is Denied.
func (c *Controller) Enroll() error {
	ref, err := LoadReference(c.deps.Storage, c.deps.Engine, c.cfg.EnrollmentImagePath)
	if err != nil {
		c.log.Warning("Enrollment failed, running in always-deny mode: %v", err)
		return err
	}

	if c.reference != nil {
		c.reference.Close()
	}
	c.reference = ref
	c.log.Info("Reference face loaded from %s", c.cfg.EnrollmentImagePath)
	return nil
}

// HasReference reports whether enrollment succeeded.
func (c *Controller) HasReference() bool {
	return c.reference != nil
}

// Show forwards a status message to the display collaborator.
func (c *Controller) Show(line1, line2 string) {
	c.deps.Display.Show(line1, line2)
}

// Run repeats recognition cycles with the configured delay between them
// until stop is closed. Capture and detection failures skip the cycle but
// still run the delay.
func (c *Controller) Run(stop <-chan struct{}) {
	for {
		if _, err := c.RunCycle(); err != nil {
			c.log.Warning("Cycle skipped: %v", err)
		}

		select {
		case <-stop:
			return
		case <-time.After(c.cfg.CycleDelay):
		}
	}
}

// RunCycle executes one capture → detect → match → escalate → report cycle.
// A non-nil error means the cycle was skipped before producing a decision;
// skipped cycles do not report telemetry.
func (c *Controller) RunCycle() (CycleResult, error) {
	frame, err := c.deps.Camera.Acquire()
	if err != nil {
		return CycleResult{}, fmt.Errorf("acquire frame: %w", err)
	}
	defer frame.Close()

	regions, err := c.deps.Engine.Detect(frame)
	if err != nil {
		return CycleResult{}, fmt.Errorf("detect faces: %w", err)
	}

	decision, score := c.evaluate(frame, regions)
	alertFired := c.tracker.Record(decision)

	if decision == Granted {
		c.log.Info("Face recognized, access granted (score %.3f)", score)
		c.deps.Display.Show("Access Granted", "")
	} else {
		c.log.Info("Access denied - consecutive attempts: %d", c.tracker.Count())
		c.deps.Display.Show("Access Denied", "Not Allowed!")
	}

	if alertFired {
		c.dispatchAlert()
	}

	c.report(decision, alertFired)
	c.record(decision, alertFired, len(regions), score)

	return CycleResult{
		Decision:   decision,
		AlertFired: alertFired,
		Faces:      len(regions),
		Score:      score,
	}, nil
}

// evaluate scans detections in detector order and grants access to the first
// candidate whose similarity strictly exceeds the threshold. A candidate that
// fails to align or score is skipped, not fatal. Without a reference face or
// detections the decision is Denied.
func (c *Controller) evaluate(frame Frame, regions []image.Rectangle) (Decision, float64) {
	if c.reference == nil || len(regions) == 0 {
		return Denied, 0
	}

	for _, region := range regions {
		face, err := c.deps.Engine.Align(frame, region)
		if err != nil {
			c.log.Warning("Skipping candidate, alignment failed: %v", err)
			continue
		}

		score, err := c.deps.Engine.Similarity(face, c.reference)
		face.Close()
		if err != nil {
			c.log.Warning("Skipping candidate, scoring failed: %v", err)
			continue
		}

		if score > c.cfg.MatchThreshold {
			return Granted, score
		}
	}

	return Denied, 0
}

// dispatchAlert makes the single best-effort escalation attempt. The attempt
// counter has already been reset; delivery failure is logged only.
func (c *Controller) dispatchAlert() {
	body := "An intruder tried to use the vehicle! Check: " + c.cfg.DashboardLink
	err := c.deps.Alerter.Send(c.cfg.AlertRecipient, alertSubject, body)
	switch {
	case err == nil:
		c.log.Info("Intruder alert dispatched to %s", c.cfg.AlertRecipient)
	case errors.Is(err, ErrUnavailable):
		// alerting disabled
	default:
		c.log.Error("Intruder alert dispatch failed: %v", err)
	}
}

func (c *Controller) report(decision Decision, alertFired bool) {
	accessStatus := 0
	if decision == Granted {
		accessStatus = 1
	}
	intruderAlert := 0
	if alertFired {
		intruderAlert = 1
	}

	err := c.deps.Telemetry.Report(c.cfg.Latitude, c.cfg.Longitude, accessStatus, intruderAlert)
	if err != nil && !errors.Is(err, ErrUnavailable) {
		c.log.Warning("Telemetry report failed: %v", err)
	}
}

func (c *Controller) record(decision Decision, alertFired bool, faces int, score float64) {
	ev := &models.AccessEvent{
		Timestamp:     time.Now().UTC(),
		Granted:       decision == Granted,
		Score:         score,
		Faces:         faces,
		IntruderAlert: alertFired,
	}

	if id, err := c.deps.Events.Insert(ev); err != nil {
		if !errors.Is(err, ErrUnavailable) {
			c.log.Warning("Event log insert failed: %v", err)
		}
	} else {
		ev.ID = id
	}

	c.deps.Publisher.Publish(ev)
}

// Close releases the long-lived reference face. Call on shutdown or before
// re-enrollment.
func (c *Controller) Close() error {
	if c.reference == nil {
		return nil
	}
	err := c.reference.Close()
	c.reference = nil
	return err
}
