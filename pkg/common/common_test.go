package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

type sessionRecorder struct {
	mu       sync.Mutex
	sessions []string
	done     chan struct{}
}

func (s *sessionRecorder) TrackSession(sessionId string, r *http.Request) {
	s.mu.Lock()
	s.sessions = append(s.sessions, sessionId)
	s.mu.Unlock()
	s.done <- struct{}{}
}
func (s *sessionRecorder) TrackSort(string, types.SortKey, int) {}
func (s *sessionRecorder) TrackFilter(string, string, []string) {}
func (s *sessionRecorder) TrackWishlist(string, types.ProductId, bool) {}
func (s *sessionRecorder) TrackAction(string, types.TrackingAction) error { return nil }
func (s *sessionRecorder) Close() error { return nil }

func TestHandleSessionCookieIssuesUuid(t *testing.T) {
	trk := &sessionRecorder{done: make(chan struct{}, 1)}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://shop.example.com:8080/api/page", nil)

	id := HandleSessionCookie(trk, w, r)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("Expected uuid session id, got %s", id)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != id {
		t.Fatalf("Expected sid cookie with %s, got %v", id, cookies)
	}
	if cookies[0].Domain != "shop.example.com" {
		t.Errorf("Expected domain without port, got %s", cookies[0].Domain)
	}

	select {
	case <-trk.done:
	case <-time.After(time.Second):
		t.Fatal("Expected new session to be tracked")
	}
	if trk.sessions[0] != id {
		t.Errorf("Expected tracked session %s, got %s", id, trk.sessions[0])
	}
}

func TestHandleSessionCookieKeepsValidCookie(t *testing.T) {
	existing := uuid.NewString()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/page", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: existing})

	if id := HandleSessionCookie(nil, w, r); id != existing {
		t.Errorf("Expected %s, got %s", existing, id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for a valid session")
	}
}

func TestHandleSessionCookieReplacesMalformedCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/page", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "12345"})

	id := HandleSessionCookie(nil, w, r)
	if id == "12345" {
		t.Error("Expected a fresh session id")
	}
	if len(w.Result().Cookies()) != 1 {
		t.Error("Expected a replacement cookie")
	}
}

func TestJsonHandlerStatusErrors(t *testing.T) {
	h := JsonHandler(nil, zap.NewNop(), func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
		switch r.URL.Query().Get("mode") {
		case "bad":
			return BadRequest(errors.New("unknown group"))
		case "fail":
			return errors.New("boom")
		}
		return enc.Encode(map[string]string{"session": sessionId})
	})

	cases := map[string]int{"ok": http.StatusOK, "bad": http.StatusBadRequest, "fail": http.StatusInternalServerError}
	for mode, expected := range cases {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/?mode="+mode, nil))
		if w.Code != expected {
			t.Errorf("Expected %d for %s, got %d", expected, mode, w.Code)
		}
	}
}

func TestJsonHandlerOptions(t *testing.T) {
	called := false
	h := JsonHandler(nil, nil, func(http.ResponseWriter, *http.Request, string, *json.Encoder) error {
		called = true
		return nil
	})
	r := httptest.NewRequest(http.MethodOptions, "/", nil)
	r.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	h(w, r)
	if called {
		t.Error("Expected OPTIONS to bypass the handler")
	}
	if w.Code != http.StatusAccepted || w.Header().Get("Access-Control-Allow-Origin") != "https://shop.example.com" {
		t.Errorf("Expected CORS preflight response, got %d %v", w.Code, w.Header())
	}
}

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "7")
	t.Setenv("WRITE_TIMEOUT", "-1")
	t.Setenv("IDLE_TIMEOUT", "abc")

	cfg := LoadTimeoutConfig(TimeoutConfig{Read: time.Second, Write: 2 * time.Second, Idle: 3 * time.Second})
	if cfg.Read != 7*time.Second {
		t.Errorf("Expected 7s read timeout, got %v", cfg.Read)
	}
	if cfg.Write != 2*time.Second || cfg.Idle != 3*time.Second {
		t.Errorf("Expected defaults kept for invalid values, got %v %v", cfg.Write, cfg.Idle)
	}

	srv := NewServerWithTimeouts(&http.Server{Addr: ":0"}, cfg)
	if srv.Addr != ":0" || srv.ReadTimeout != cfg.Read {
		t.Errorf("Expected timeouts applied to the given server, got %+v", srv)
	}
}

func TestShutdownRunsHooksInOrder(t *testing.T) {
	var order []int
	hook := func(n int) ShutdownHook {
		return func(ctx context.Context) error {
			order = append(order, n)
			return nil
		}
	}
	failing := func(ctx context.Context) error { return errors.New("hook failed") }

	srv := &http.Server{}
	shutdown(context.Background(), srv, zap.NewNop(), time.Second, hook(1), nil, failing, hook(2))
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected hooks [1 2], got %v", order)
	}
}
