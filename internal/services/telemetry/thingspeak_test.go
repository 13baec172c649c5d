package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
)

func newTestReporter(t *testing.T, serverURL string) *ThingSpeak {
	t.Helper()
	cfg := &config.Config{
		TelemetryURL:    serverURL,
		TelemetryAPIKey: "test-key",
		LogDirectory:    t.TempDir(),
	}
	return NewThingSpeak(cfg, logger.NewLogger(cfg))
}

func TestThingSpeak_ReportFields(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"api_key": q.Get("api_key"),
			"field1":  q.Get("field1"),
			"field2":  q.Get("field2"),
			"field3":  q.Get("field3"),
			"field4":  q.Get("field4"),
		}
		w.Write([]byte("1"))
	}))
	defer server.Close()

	reporter := newTestReporter(t, server.URL)
	if err := reporter.Report(-26.2041, 28.0473, 1, 0); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	expected := map[string]string{
		"api_key": "test-key",
		"field1":  "-26.204100",
		"field2":  "28.047300",
		"field3":  "0",
		"field4":  "1",
	}
	for key, want := range expected {
		if got[key] != want {
			t.Errorf("%s = %q, expected %q", key, got[key], want)
		}
	}
}

func TestThingSpeak_RejectedUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	reporter := newTestReporter(t, server.URL)
	if err := reporter.Report(0, 0, 0, 1); err == nil {
		t.Error("Report should fail on a rejected update")
	}
}

func TestThingSpeak_UnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	reporter := newTestReporter(t, server.URL)
	if err := reporter.Report(0, 0, 0, 0); err == nil {
		t.Error("Report should fail when the endpoint is unreachable")
	}
}

func TestDisabled_ReportsUnavailable(t *testing.T) {
	err := Disabled{}.Report(0, 0, 1, 1)
	if !errors.Is(err, access.ErrUnavailable) {
		t.Errorf("Disabled.Report = %v, expected ErrUnavailable", err)
	}
}
