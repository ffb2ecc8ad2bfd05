package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xtding233/equity-backend/internal/api/httpapi"
	"github.com/xtding233/equity-backend/internal/app"
	"github.com/xtding233/equity-backend/internal/equity"
	"github.com/xtding233/equity-backend/internal/preset"
)

func newRouter(t *testing.T, svc httpapi.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	return httpapi.NewRouter(httpapi.NewHandlers(svc, log), log)
}

func newAppService(t *testing.T) *app.ConfigService {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "presets"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "presets", "omaha.yaml"), []byte("handSize: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return app.NewConfigService(preset.NewLoader(dir), nil, zap.NewNop().Sugar())
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: body is not JSON: %q", method, path, w.Body.String())
	}
	return w, out
}

func TestResolve(t *testing.T) {
	r := newRouter(t, newAppService(t))
	w, body := do(t, r, "POST", "/v1/resolve", `{"numPlayers":3,"board":"As,Kd","boardSize":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %v", w.Code, body)
	}
	if body["numPlayers"] != 3.0 || body["board"] != "As,Kd" || body["numDecks"] != 1.0 {
		t.Fatalf("got %v", body)
	}
	if body["iterations"] != float64(equity.DefaultIterations) || body["returnHandStats"] != false {
		t.Fatalf("defaults not applied: %v", body)
	}
	if hands, ok := body["hands"].([]any); !ok || len(hands) != 0 {
		t.Fatalf("hands should be an empty list: %#v", body["hands"])
	}
}

func TestResolveWithPreset(t *testing.T) {
	r := newRouter(t, newAppService(t))
	w, body := do(t, r, "POST", "/v1/resolve?preset=omaha", `{"hands":["As,Kd,Qh,Jc"]}`)
	if w.Code != http.StatusOK || body["handSize"] != 4.0 {
		t.Fatalf("got %d %v", w.Code, body)
	}

	w, body = do(t, r, "POST", "/v1/resolve?preset=stud", `{"numPlayers":2}`)
	if w.Code != http.StatusNotFound || body["error"] == nil {
		t.Fatalf("expected 404, got %d %v", w.Code, body)
	}
}

func TestValidate(t *testing.T) {
	r := newRouter(t, newAppService(t))

	w, body := do(t, r, "POST", "/v1/validate", `{"numPlayers":2}`)
	if w.Code != http.StatusOK || body["valid"] != true {
		t.Fatalf("got %d %v", w.Code, body)
	}

	w, body = do(t, r, "POST", "/v1/validate", `{"hands":["As,Kd","As,Qc"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if body["field"] != equity.FieldCards || body["value"] != "As" {
		t.Fatalf("got %v", body)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "As") {
		t.Fatalf("message should cite the card: %v", body)
	}
}

func TestValidateNumbers(t *testing.T) {
	r := newRouter(t, newAppService(t))
	for _, tc := range []struct {
		body string
		code int
	}{
		{`{"numPlayers":2.0}`, http.StatusOK},
		{`{"numPlayers":2.5}`, http.StatusBadRequest},
		{`{"numPlayers":9007199254740992}`, http.StatusBadRequest},
		{`{"numPlayers":1e3}`, http.StatusOK},
		{`{"numPlayers":null}`, http.StatusBadRequest},
	} {
		w, body := do(t, r, "POST", "/v1/validate", tc.body)
		if w.Code != tc.code {
			t.Fatalf("%s: expected %d got %d: %v", tc.body, tc.code, w.Code, body)
		}
	}
}

func TestBadBody(t *testing.T) {
	r := newRouter(t, newAppService(t))
	for _, b := range []string{``, `[]`, `null`, `{"numPlayers":`, `{} {}`} {
		w, body := do(t, r, "POST", "/v1/validate", b)
		if w.Code != http.StatusBadRequest || body["error"] == nil {
			t.Fatalf("%q: expected 400 got %d %v", b, w.Code, body)
		}
	}
}

type failingService struct{}

func (failingService) Validate(context.Context, string, equity.Raw) error {
	return errors.New("disk on fire")
}

func (failingService) Resolve(context.Context, string, equity.Raw) (equity.Resolved, error) {
	return equity.Resolved{}, errors.New("disk on fire")
}

func TestInternalError(t *testing.T) {
	r := newRouter(t, failingService{})
	w, body := do(t, r, "POST", "/v1/resolve", `{"numPlayers":2}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
	if strings.Contains(body["error"].(string), "disk") {
		t.Fatalf("internal detail leaked: %v", body)
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(t, failingService{})
	w, body := do(t, r, "GET", "/healthz", "")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("got %d %v", w.Code, body)
	}
}

func TestCORS(t *testing.T) {
	r := newRouter(t, newAppService(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/validate", strings.NewReader(`{"numPlayers":2}`))
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS header, got %q", got)
	}
}
