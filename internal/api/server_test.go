package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/cache"
)

const cardJSON = `{
	"schemaVersion": 1,
	"name": "card",
	"document": {
		"name": "Card",
		"type": "FRAME",
		"absoluteBoundingBox": {"x": 0, "y": 0, "width": 200, "height": 100},
		"children": [
			{
				"name": "Label",
				"type": "TEXT",
				"absoluteBoundingBox": {"x": 20, "y": 20, "width": 80, "height": 20},
				"characters": "Hi",
				"style": {"fontFamily": "Inter", "fontWeight": 400, "fontSize": 14}
			}
		]
	}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	return NewServer(log.New(io.Discard), c)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestRebuildEndpoint(t *testing.T) {
	s := newTestServer(t)

	post := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/rebuild", strings.NewReader(cardJSON))
		s.ServeHTTP(rec, req)
		return rec
	}

	rec := post()
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/rebuild status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first request X-Cache = %q, want miss", got)
	}

	var res struct {
		RootNodeID string   `json:"rootNodeId"`
		Warnings   []string `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.RootNodeID == "" {
		t.Error("rootNodeId is empty")
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}

	// Identical request is served from the report cache.
	rec = post()
	if rec.Code != http.StatusOK {
		t.Fatalf("cached POST status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", got)
	}
}

func TestRebuildEndpointErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name:       "missing document",
			body:       `{"schemaVersion": 1}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_SNAPSHOT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/rebuild", strings.NewReader(tt.body))
			s.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var res errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if res.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", res.Code, tt.wantCode)
			}
		})
	}
}

func TestInspectEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/inspect", strings.NewReader(cardJSON))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/inspect status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "digraph G {") {
		t.Errorf("body = %q, want DOT output", body)
	}
	if !strings.Contains(body, "Card") || !strings.Contains(body, "Label") {
		t.Errorf("DOT output missing node labels:\n%s", body)
	}
}

func TestInspectUnknownFormat(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/inspect?format=tiff", strings.NewReader(cardJSON))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
