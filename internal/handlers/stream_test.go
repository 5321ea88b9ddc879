package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type streamTrailer struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

func TestResultStreamWritesCompleteDocument(t *testing.T) {
	w := httptest.NewRecorder()
	s := NewResultStream(w)

	if s.Started() {
		t.Fatal("expected stream not to be started before the first write")
	}

	for i := range 100 {
		if err := s.Write(map[string]int{"n": i}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := s.Close(streamTrailer{Count: 100, Label: "done"}); err != nil {
		t.Fatalf("close: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body struct {
		Results []map[string]int `json:"results"`
		Count   int              `json:"count"`
		Label   string           `json:"label"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding streamed document %q: %v", w.Body.String(), err)
	}

	if len(body.Results) != 100 || body.Results[99]["n"] != 99 {
		t.Fatalf("unexpected results: %v", body.Results)
	}
	if body.Count != 100 || body.Label != "done" {
		t.Fatalf("unexpected trailer fields: %+v", body)
	}
}

func TestResultStreamEmptyTrailerAndNoResults(t *testing.T) {
	w := httptest.NewRecorder()
	s := NewResultStream(w)

	if err := s.Close(struct{}{}); err != nil {
		t.Fatalf("close: %v", err)
	}

	if got, want := w.Body.String(), `{"results":[]}`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResultStreamAbortKeepsWrittenResults(t *testing.T) {
	w := httptest.NewRecorder()
	s := NewResultStream(w)

	_ = s.Write(1)
	_ = s.Write(2)
	if err := s.Abort("boom"); err != nil {
		t.Fatalf("abort: %v", err)
	}

	if got, want := w.Body.String(), `{"results":[1,2],"error":"boom"}`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResultStreamRejectsNonObjectTrailer(t *testing.T) {
	s := NewResultStream(httptest.NewRecorder())

	if err := s.Close([]int{1}); err == nil {
		t.Fatal("expected error for array trailer")
	}
}
