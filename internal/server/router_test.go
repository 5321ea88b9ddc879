package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chi-reactor-workshop/internal/arithseq"
	"chi-reactor-workshop/internal/config"
	"chi-reactor-workshop/internal/observability"
	"chi-reactor-workshop/internal/polyeval"
	"chi-reactor-workshop/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := arithseq.InitMetrics(); err != nil {
		t.Fatalf("initializing arithmetic sequence metrics: %v", err)
	}
	if err := polyeval.InitMetrics(); err != nil {
		t.Fatalf("initializing polynomial metrics: %v", err)
	}

	cfg := config.Default()
	cfg.CORSAllowedOrigins = []string{"https://workshop.example"}
	cfg.MaxArithmeticSequenceCount = 5
	return NewRouter(cfg)
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterArithmeticSequenceSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/arithmetic-sequence/reactive/summary?min_value=1&step=1&count=3&method=fast", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["total_sum"].(float64); !ok || got != 10 {
		t.Fatalf("expected total_sum 10, got %#v", payload["total_sum"])
	}
}

func TestNewRouterAppliesConfiguredLimits(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/arithmetic-sequence/non-reactive/detail?min_value=1&step=1&count=6&method=fast", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestNewRouterPolynomialEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"steps":[{"operation":"literal","literal_polynomial_parameters":[2,1]}]}`
	w := testutil.PostJSON(router, "/polynomial/non-reactive", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var payload polyeval.EvaluateResponse
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if len(payload.Results) != 1 || len(payload.Results[0].Roots) != 1 || payload.Results[0].Roots[0].Real != -2 {
		t.Fatalf("expected single root -2, got %+v", payload.Results)
	}
}

func TestNewRouterAnswersCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/polynomial/reactive", nil)
	req.Header.Set("Origin", "https://workshop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://workshop.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestNewRouterRejectsUnknownOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allowed origin header, got %q", got)
	}
}
