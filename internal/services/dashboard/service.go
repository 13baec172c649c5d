package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"facegate/internal/config"
	"facegate/internal/logger"
	"facegate/internal/models"
)

// recentLimit bounds the in-memory event history served by /api/events.
const recentLimit = 500

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Service exposes the live status dashboard: a recent-event ring over HTTP
// and a websocket stream of new events.
type Service struct {
	hub    *Hub
	logger *logger.Logger
	port   int

	mu     sync.RWMutex
	recent []models.AccessEvent
}

// NewService creates the dashboard service.
func NewService(cfg *config.Config, logger *logger.Logger) *Service {
	return &Service{
		hub:    NewHub(logger),
		logger: logger,
		port:   cfg.DashboardPort,
	}
}

// Publish retains the event in the recent ring and fans it out to viewers.
// Never blocks the recognition loop.
func (s *Service) Publish(ev *models.AccessEvent) {
	s.mu.Lock()
	s.recent = append(s.recent, *ev)
	if len(s.recent) > recentLimit {
		s.recent = s.recent[len(s.recent)-recentLimit:]
	}
	s.mu.Unlock()

	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("Failed to encode access event: %v", err)
		return
	}
	s.hub.Broadcast(payload)
}

// Handler returns the dashboard routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", s.eventsHandler)
	mux.HandleFunc("/api/status", s.statusHandler)
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

// Run starts the hub and serves the dashboard until the listener fails.
func (s *Service) Run(stop <-chan struct{}) error {
	go s.hub.Run(stop)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("Dashboard listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// eventsHandler serves the recent events, newest last.
func (s *Service) eventsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	events := make([]models.AccessEvent, len(s.recent))
	copy(events, s.recent)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		s.logger.Error("Failed to write events response: %v", err)
	}
}

// statusHandler serves the most recent event plus viewer count.
func (s *Service) statusHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	var latest *models.AccessEvent
	if len(s.recent) > 0 {
		ev := s.recent[len(s.recent)-1]
		latest = &ev
	}
	s.mu.RUnlock()

	status := struct {
		Latest  *models.AccessEvent `json:"latest"`
		Viewers int                 `json:"viewers"`
	}{
		Latest:  latest,
		Viewers: s.hub.ClientCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("Failed to write status response: %v", err)
	}
}

// wsHandler upgrades a viewer connection and keeps it registered until the
// client goes away.
func (s *Service) wsHandler(w http.ResponseWriter, r *http.Request) {
	connection, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade error: %v", err)
		return
	}
	connection.SetReadLimit(512)
	connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	connection.SetPongHandler(func(appData string) error {
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	defer connection.Close()

	s.hub.Register(connection)
	defer s.hub.Unregister(connection)

	for {
		if _, _, err := connection.ReadMessage(); err != nil {
			break
		}
	}
}

// RecentCount returns the number of retained events.
func (s *Service) RecentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recent)
}

// Disabled is the publisher used when the dashboard is turned off.
type Disabled struct{}

func (Disabled) Publish(ev *models.AccessEvent) {}
