package monitor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMonitor_Routes(t *testing.T) {
	m := NewMonitor("minepair_monitor_test")
	m.IncOnlinePlayers()
	m.SetActiveRooms(3)
	m.IncMessagesReceived()
	m.IncGamesCompleted()
	m.ObserveMessageLatency(5 * time.Millisecond)

	mux := m.routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected /metrics to serve, got %d", rec.Code)
	}
	for _, metric := range []string{
		"minepair_monitor_test_online_players",
		"minepair_monitor_test_active_rooms",
		"minepair_monitor_test_messages_received_total",
		"minepair_monitor_test_games_completed_total",
		"minepair_monitor_test_message_latency_seconds",
	} {
		if !strings.Contains(rec.Body.String(), metric) {
			t.Errorf("Expected %s in the exposition", metric)
		}
	}

	// The game endpoints live on their own listener.
	for _, path := range []string{"/ws", "/healthz"} {
		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("The metrics mux must not serve %s, got %d", path, rec.Code)
		}
	}
}
