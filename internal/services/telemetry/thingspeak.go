package telemetry

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
)

// ThingSpeak reports cycle status to a ThingSpeak channel: field1/field2 are
// the location, field3 the intruder alert flag, field4 the access status.
type ThingSpeak struct {
	updateURL string
	apiKey    string
	client    *http.Client
	logger    *logger.Logger
}

// NewThingSpeak creates the reporter with a bounded request timeout so a
// stalled endpoint cannot hang the loop indefinitely.
func NewThingSpeak(cfg *config.Config, logger *logger.Logger) *ThingSpeak {
	return &ThingSpeak{
		updateURL: cfg.TelemetryURL,
		apiKey:    cfg.TelemetryAPIKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Report sends one status update. Single attempt, no retry.
func (t *ThingSpeak) Report(lat, lng float64, accessStatus, intruderAlert int) error {
	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("field1", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("field2", strconv.FormatFloat(lng, 'f', 6, 64))
	params.Set("field3", strconv.Itoa(intruderAlert))
	params.Set("field4", strconv.Itoa(accessStatus))

	resp, err := t.client.Get(t.updateURL + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("telemetry request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telemetry update rejected: %s", resp.Status)
	}

	t.logger.Info("Telemetry update sent: access=%d intruder=%d", accessStatus, intruderAlert)
	return nil
}

// Disabled is the reporter used when telemetry is turned off.
type Disabled struct{}

func (Disabled) Report(lat, lng float64, accessStatus, intruderAlert int) error {
	return access.ErrUnavailable
}
