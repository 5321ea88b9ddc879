package arithseq

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chi-reactor-workshop/internal/observability"
	"chi-reactor-workshop/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, maxCount int) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing arithmetic sequence metrics: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(maxCount))
	return r
}

func TestDetailEndpointsReturnSameResults(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, path := range []string{"/arithmetic-sequence/non-reactive/detail", "/arithmetic-sequence/reactive/detail"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path+"?min_value=2&step=3&count=4&method=fast", nil)
			w := testutil.ExecuteRequest(req, router)

			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var body DetailResponse
			testutil.DecodeJSONBody(t, w.Body, &body)

			if len(body.Results) != 4 {
				t.Fatalf("expected 4 results, got %d", len(body.Results))
			}
			last := body.Results[3]
			want := ResultResponse{MinValue: 2, Step: 3, Count: 4, MaxValue: 11, Sum: 26}
			if last != want {
				t.Fatalf("expected last result %+v, got %+v", want, last)
			}
			if body.MemoryUsageBytes == 0 {
				t.Fatal("expected memory usage to be reported")
			}
		})
	}
}

func TestSummaryEndpointsReturnSameTotal(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, path := range []string{"/arithmetic-sequence/non-reactive/summary", "/arithmetic-sequence/reactive/summary"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path+"?min_value=1&step=1&count=4&method=Exhaustive", nil)
			w := testutil.ExecuteRequest(req, router)

			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var body SummaryResponse
			testutil.DecodeJSONBody(t, w.Body, &body)

			if body.TotalSum != 20 || body.Count != 4 {
				t.Fatalf("expected total 20 for 4 sequences, got %+v", body)
			}
		})
	}
}

func TestEndpointsRejectBadRequests(t *testing.T) {
	router := newTestRouter(t, 10)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "unknown method", query: "min_value=1&step=1&count=3&method=quick", want: ErrUnsupportedMethod.Error()},
		{name: "missing method", query: "min_value=1&step=1&count=3", want: ErrUnsupportedMethod.Error()},
		{name: "zero count", query: "min_value=1&step=1&count=0&method=fast", want: ErrInvalidCount.Error()},
		{name: "over limit", query: "min_value=1&step=1&count=11&method=fast", want: "arithmetic sequence count 11 exceeds maximum allowed 10"},
		{name: "missing step", query: "min_value=1&count=3&method=fast", want: "invalid query parameter: step is required"},
		{name: "not a number", query: "min_value=x&step=1&count=3&method=fast", want: `invalid query parameter: min_value must be a 32-bit integer, got "x"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/arithmetic-sequence/reactive/detail?"+tc.query, nil)
			w := testutil.ExecuteRequest(req, router)

			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			if msg := testutil.ErrorMessage(t, w.Body); msg != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, msg)
			}
		})
	}
}

func TestBeginKeepsValidatedSequence(t *testing.T) {
	newTestRouter(t, 10)
	h := NewHandler(10)

	req := httptest.NewRequest(http.MethodGet, "/arithmetic-sequence/reactive/detail?min_value=5&step=-2&count=3&method=exhaustive", nil)
	w := httptest.NewRecorder()

	c := h.begin(w, req, "detail_reactive")
	if c == nil {
		t.Fatalf("expected request to be accepted, got status %d: %s", w.Code, w.Body.String())
	}
	defer c.span.End()

	if c.seq == nil {
		t.Fatal("expected the validated sequence to be kept on the call")
	}
	if got := Total(c.seq); got != 5+8+9 {
		t.Fatalf("expected total 22, got %d", got)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected nothing written on success, got %q", w.Body.String())
	}
}
