package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// flushEvery is how many results are written between explicit flushes.
const flushEvery = 64

// ResultStream writes a JSON document of the form
//
//	{"results":[r1,r2,...],<trailer fields>}
//
// one result at a time, so the full result list is never held in memory.
// Headers are committed lazily with the first result; until then the caller
// may still send an ordinary error response.
type ResultStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
	n       int
}

func NewResultStream(w http.ResponseWriter) *ResultStream {
	f, _ := w.(http.Flusher)
	return &ResultStream{w: w, flusher: f}
}

// Started reports whether any byte of the document has been written.
func (s *ResultStream) Started() bool {
	return s.started
}

func (s *ResultStream) start() error {
	if s.started {
		return nil
	}
	s.started = true
	s.w.Header().Set("Content-Type", "application/json")
	s.w.WriteHeader(http.StatusOK)
	_, err := s.w.Write([]byte(`{"results":[`))
	return err
}

// Write appends one element to the results array.
func (s *ResultStream) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.start(); err != nil {
		return err
	}
	if s.n > 0 {
		b = append([]byte{','}, b...)
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	s.n++
	if s.n%flushEvery == 0 {
		s.flush()
	}
	return nil
}

// Close ends the results array and merges the fields of trailer, which must
// encode as a JSON object, into the enclosing document.
func (s *ResultStream) Close(trailer any) error {
	b, err := json.Marshal(trailer)
	if err != nil {
		return fmt.Errorf("encode trailer: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) < 2 || b[0] != '{' {
		return fmt.Errorf("trailer must encode as a JSON object, got %s", b)
	}
	return s.finish(b[1:])
}

// Abort ends a started document with an "error" field. Results already
// written stay in the body.
func (s *ResultStream) Abort(msg string) error {
	b, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return err
	}
	return s.finish(b[1:])
}

// finish writes "]" followed by the remainder of an object after its "{".
func (s *ResultStream) finish(rest []byte) error {
	if err := s.start(); err != nil {
		return err
	}
	closing := []byte("]")
	if !bytes.Equal(rest, []byte("}")) {
		closing = append(closing, ',')
	}
	if _, err := s.w.Write(append(closing, rest...)); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *ResultStream) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
