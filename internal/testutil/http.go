// Package testutil holds helpers shared by the HTTP handler tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ExecuteRequest serves req on handler and returns the recorded response.
func ExecuteRequest(req *http.Request, handler http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// PostJSON serves a POST of the raw JSON body to path on handler.
func PostJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ExecuteRequest(req, handler)
}

func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

// DecodeJSONBody decodes body into dst and fails the test on trailing data,
// which would mean a streamed document was not terminated correctly.
func DecodeJSONBody(t testing.TB, body io.Reader, dst any) {
	t.Helper()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if dec.More() {
		t.Fatal("unexpected data after JSON document")
	}
}

// ErrorMessage decodes a {"error": "..."} body and returns the message.
func ErrorMessage(t testing.TB, body io.Reader) string {
	t.Helper()
	var payload map[string]string
	DecodeJSONBody(t, body, &payload)
	msg, ok := payload["error"]
	if !ok {
		t.Fatalf("expected an error field, got %v", payload)
	}
	return msg
}
