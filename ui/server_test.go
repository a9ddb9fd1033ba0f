package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doseview/app"
	"doseview/internal/config"
	"doseview/internal/sampledata"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", GinMode: "test"},
		UI:     config.UIConfig{Theme: "light", PageSize: 25},
	}
	service := app.NewScreeningService(sampledata.NewGenerator(42).Screening())
	server, err := NewServer(cfg, service)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

func TestIndexRendersDashboard(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Compound Screening", "light.css", "compound-select", "Pool screens"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestOptionsEndpoint(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/options?read_out=voltage", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/options = %d, want 200", w.Code)
	}
	var options app.Options
	if err := json.Unmarshal(w.Body.Bytes(), &options); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(options.Measurements) != 7 {
		t.Errorf("voltage measurements = %d, want 7", len(options.Measurements))
	}
	if len(options.Defaults) != 3 {
		t.Errorf("defaults = %v, want 3 entries", options.Defaults)
	}
}

func TestExploreEmptySelectionIsTerminalNotAnError(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/explore?read_out=calcium", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/explore = %d, want 200", w.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload["empty_selection"] != true {
		t.Errorf("payload = %v, want empty_selection", payload)
	}
}

func TestExploreReturnsAllPanels(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/explore?read_out=calcium&compound=CMP-001&measurement=Rising+Slope", nil)
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/explore = %d, want 200", w.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	for _, key := range []string{"chart", "summary", "page", "caption"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
	if _, ok := payload["chart_error"]; ok {
		t.Errorf("unexpected chart_error: %v", payload["chart_error"])
	}
}

func TestExploreNoRowsForSearch(t *testing.T) {
	server := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/explore?read_out=calcium&compound=CMP-001&measurement=Rising+Slope&search=zzz", nil)
	server.Router().ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload["no_rows_for_search"] != true {
		t.Errorf("payload = %v, want no_rows_for_search", payload)
	}
	if _, ok := payload["chart"]; !ok {
		t.Error("chart should still render when only the search is empty")
	}
}

func TestStaticAssetsServed(t *testing.T) {
	server := testServer(t)

	for _, path := range []string{"/static/css/light.css", "/static/css/dark.css", "/static/js/screening.js"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		server.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}
