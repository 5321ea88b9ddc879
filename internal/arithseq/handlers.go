package arithseq

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"slices"
	"strconv"
	"time"

	"chi-reactor-workshop/internal/handlers"
	"chi-reactor-workshop/internal/observability"
	"chi-reactor-workshop/internal/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the arithmetic sequence domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("arithmetic_sequence")

var errInvalidParameter = errors.New("invalid query parameter")

// Handler serves the arithmetic sequence endpoints.
type Handler struct {
	maxCount int
}

// NewHandler returns a Handler rejecting requests for more than maxCount
// sequences.
func NewHandler(maxCount int) *Handler {
	return &Handler{maxCount: maxCount}
}

// call carries the per-request state shared by every endpoint.
type call struct {
	ctx       context.Context
	span      trace.Span
	logger    *zap.Logger
	requestID string
	opName    string
	req       Request
	seq       iter.Seq[Result]
	start     time.Time
}

// begin starts the span, parses and validates the query. It writes the error
// response itself and returns nil when the request cannot be served.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request, opName string) *call {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("arithmetic_sequence.%s", opName),
		trace.WithAttributes(
			attribute.String("arithmetic_sequence.operation", opName),
			attribute.String("request.id", requestID),
		),
	)

	c := &call{ctx: ctx, span: span, logger: logger, requestID: requestID, opName: opName}

	var seq iter.Seq[Result]
	req, err := parseRequest(r)
	if err == nil {
		err = ValidateCount(req.Count, h.maxCount)
	}
	if err == nil {
		seq, err = Sequence(req)
	}
	if err != nil {
		c.fail(w, err)
		span.End()
		return nil
	}

	span.SetAttributes(
		attribute.Int("arithmetic_sequence.min_value", int(req.MinValue)),
		attribute.Int("arithmetic_sequence.step", int(req.Step)),
		attribute.Int("arithmetic_sequence.count", int(req.Count)),
		attribute.String("arithmetic_sequence.method", req.Method.String()),
	)

	c.req = req
	c.seq = seq
	c.start = time.Now()
	return c
}

func (c *call) fail(w http.ResponseWriter, err error) {
	observability.RecordError(c.ctx, c.span, c.logger, errorCounter, c.opName, err.Error(), err, statusFor(err), w)
}

// complete records metrics, the span outcome and the completion log.
func (c *call) complete(elapsed time.Duration, fields ...zap.Field) {
	ms := float64(elapsed.Microseconds()) / 1000.0

	attrs := metric.WithAttributes(
		attribute.String("operation", c.opName),
		attribute.String("method", c.req.Method.String()),
	)
	requestCounter.Add(c.ctx, 1, attrs)
	sequenceCounter.Add(c.ctx, int64(c.req.Count), attrs)
	durationHistogram.Record(c.ctx, ms, attrs)

	c.span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", ms),
	))
	c.span.SetStatus(codes.Ok, "")

	c.logger.Info("arithmetic sequence computed", append([]zap.Field{
		zap.String("operation", c.opName),
		zap.Int32("min_value", c.req.MinValue),
		zap.Int32("step", c.req.Step),
		zap.Int32("count", c.req.Count),
		zap.Stringer("method", c.req.Method),
		zap.String("request_id", c.requestID),
		zap.Float64("duration_ms", ms),
	}, fields...)...)
}

// DetailNonReactive handles GET /arithmetic-sequence/non-reactive/detail.
// Every result is held in memory before the response is written.
func (h *Handler) DetailNonReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "detail_non_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	results := slices.Collect(c.seq)

	out := make([]ResultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toResponse(res))
	}

	elapsed := time.Since(c.start)
	c.complete(elapsed)

	handlers.WriteJSON(w, http.StatusOK, DetailResponse{
		Results:   out,
		Execution: handlers.NewExecution(elapsed),
	})
}

// SummaryNonReactive handles GET /arithmetic-sequence/non-reactive/summary.
// The results are materialised and then added up.
func (h *Handler) SummaryNonReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "summary_non_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	results := slices.Collect(c.seq)

	var total int64
	for _, res := range results {
		total += int64(res.Sum)
	}

	h.writeSummary(w, c, total)
}

// DetailReactive handles GET /arithmetic-sequence/reactive/detail. Results
// are encoded into the response body as they are produced.
func (h *Handler) DetailReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "detail_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	stream := handlers.NewResultStream(w)
	for res := range c.seq {
		if err := stream.Write(toResponse(res)); err != nil {
			observability.RecordFailure(c.ctx, c.span, c.logger, errorCounter, c.opName, "writing streamed result", err)
			return
		}
	}

	elapsed := time.Since(c.start)
	if err := stream.Close(handlers.NewExecution(elapsed)); err != nil {
		observability.RecordFailure(c.ctx, c.span, c.logger, errorCounter, c.opName, "closing result stream", err)
		return
	}
	c.complete(elapsed)
}

// SummaryReactive handles GET /arithmetic-sequence/reactive/summary. The sums
// are reduced while the sequence is generated, in constant memory.
func (h *Handler) SummaryReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "summary_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	h.writeSummary(w, c, Total(c.seq))
}

func (h *Handler) writeSummary(w http.ResponseWriter, c *call, total int64) {
	elapsed := time.Since(c.start)

	totalSumGauge.Record(c.ctx, total, metric.WithAttributes(attribute.String("operation", c.opName)))
	c.span.SetAttributes(attribute.Int64("arithmetic_sequence.total_sum", total))
	c.complete(elapsed, zap.Int64("total_sum", total))

	handlers.WriteJSON(w, http.StatusOK, SummaryResponse{
		TotalSum:  total,
		Count:     c.req.Count,
		Execution: handlers.NewExecution(elapsed),
	})
}

// parseRequest reads min_value, step, count and method from the query string.
// A missing or unknown method is left as MethodUnknown so it is reported as
// unsupported rather than malformed.
func parseRequest(r *http.Request) (Request, error) {
	q := r.URL.Query()

	minValue, err := parseInt32(q.Get("min_value"), "min_value")
	if err != nil {
		return Request{}, err
	}
	step, err := parseInt32(q.Get("step"), "step")
	if err != nil {
		return Request{}, err
	}
	count, err := parseInt32(q.Get("count"), "count")
	if err != nil {
		return Request{}, err
	}

	method, _ := ParseMethod(q.Get("method"))

	return Request{MinValue: minValue, Step: step, Count: count, Method: method}, nil
}

func parseInt32(v, name string) (int32, error) {
	if v == "" {
		return 0, fmt.Errorf("%w: %s is required", errInvalidParameter, name)
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a 32-bit integer, got %q", errInvalidParameter, name, v)
	}
	return int32(n), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidParameter),
		errors.Is(err, ErrInvalidCount),
		errors.Is(err, ErrUnsupportedMethod),
		errors.Is(err, validation.ErrLimitExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
