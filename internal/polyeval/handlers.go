package polyeval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
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

// tracer is the polynomial domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("polynomial")

var (
	errInvalidBody  = errors.New("invalid request body")
	errInvalidDelay = errors.New("delay must be a non-negative number of milliseconds")
)

// maxBodyBytes bounds the request body read by the evaluation endpoints.
const maxBodyBytes = 1 << 20

// Handler serves the polynomial evaluation endpoints.
type Handler struct {
	limits Limits
}

func NewHandler(limits Limits) *Handler {
	return &Handler{limits: limits}
}

type call struct {
	ctx       context.Context
	span      trace.Span
	logger    *zap.Logger
	requestID string
	opName    string
	steps     []*Step
	delay     time.Duration
	start     time.Time
}

// begin decodes and validates the whole batch. Nothing is evaluated and no
// result is written unless every limit holds. On failure it writes the error
// response and returns nil.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request, opName string) *call {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("polynomial.%s", opName),
		trace.WithAttributes(
			attribute.String("polynomial.operation", opName),
			attribute.String("request.id", requestID),
		),
	)

	c := &call{ctx: ctx, span: span, logger: logger, requestID: requestID, opName: opName}

	fail := func(err error) *call {
		c.fail(w, err)
		span.End()
		return nil
	}

	delay, err := parseDelay(r.URL.Query().Get("delay"))
	if err != nil {
		return fail(err)
	}

	var req EvaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return fail(fmt.Errorf("%w: %w", errInvalidBody, err))
	}

	steps := toSteps(req)
	if err := h.limits.Validate(steps); err != nil {
		return fail(err)
	}

	span.SetAttributes(
		attribute.Int("polynomial.steps_count", len(steps)),
		attribute.Int64("polynomial.delay_ms", delay.Milliseconds()),
	)

	logger.Info("starting polynomial evaluation",
		zap.String("operation", opName),
		zap.Int("steps", len(steps)),
		zap.Duration("delay", delay),
		zap.String("request_id", requestID),
	)

	c.steps = steps
	c.delay = delay
	c.start = time.Now()
	return c
}

func (c *call) fail(w http.ResponseWriter, err error) {
	observability.RecordError(c.ctx, c.span, c.logger, errorCounter, c.opName, err.Error(), err, statusFor(err), w)
}

// stepDone records the per-tree span event, counter and gauge.
func (c *call) stepDone(i int, res Result) {
	degree := res.Polynomial.Degree()
	attrs := metric.WithAttributes(attribute.String("operation", c.opName))

	treeCounter.Add(c.ctx, 1, attrs)
	degreeGauge.Record(c.ctx, int64(degree), attrs)

	c.span.AddEvent("step.complete", trace.WithAttributes(
		attribute.Int("step.index", i),
		attribute.Int("step.degree", degree),
		attribute.Int("step.roots", len(res.Roots)),
	))
}

func (c *call) complete(elapsed time.Duration, trees int) {
	ms := float64(elapsed.Microseconds()) / 1000.0
	attrs := metric.WithAttributes(attribute.String("operation", c.opName))

	requestCounter.Add(c.ctx, 1, attrs)
	durationHistogram.Record(c.ctx, ms, attrs)

	c.span.SetStatus(codes.Ok, "")

	c.logger.Info("polynomial evaluation completed",
		zap.String("operation", c.opName),
		zap.Int("trees", trees),
		zap.String("request_id", c.requestID),
		zap.Float64("duration_ms", ms),
	)
}

// EvaluateNonReactive handles POST /polynomial/non-reactive. Every result is
// computed and held in memory before the response is written.
func (h *Handler) EvaluateNonReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "evaluate_non_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	results, err := EvaluateAll(c.ctx, c.steps, c.delay)
	if err != nil {
		c.fail(w, err)
		return
	}

	out := make([]ResultResponse, 0, len(results))
	for i, res := range results {
		c.stepDone(i, res)
		out = append(out, toResponse(res))
	}

	elapsed := time.Since(c.start)
	c.complete(elapsed, len(results))

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Results:   out,
		Execution: handlers.NewExecution(elapsed),
	})
}

// EvaluateReactive handles POST /polynomial/reactive. Each result is written
// as soon as its tree has been evaluated. A failure after the first result
// ends the document with an "error" field.
func (h *Handler) EvaluateReactive(w http.ResponseWriter, r *http.Request) {
	c := h.begin(w, r, "evaluate_reactive")
	if c == nil {
		return
	}
	defer c.span.End()

	stream := handlers.NewResultStream(w)
	i := 0
	for res, err := range Stream(c.ctx, c.steps, c.delay) {
		if err != nil {
			if !stream.Started() {
				c.fail(w, err)
				return
			}
			observability.RecordFailure(c.ctx, c.span, c.logger, errorCounter, c.opName, err.Error(), err)
			_ = stream.Abort(err.Error())
			return
		}

		c.stepDone(i, res)
		i++

		if err := stream.Write(toResponse(res)); err != nil {
			if !stream.Started() {
				c.fail(w, fmt.Errorf("writing streamed result: %w", err))
				return
			}
			observability.RecordFailure(c.ctx, c.span, c.logger, errorCounter, c.opName, "writing streamed result", err)
			return
		}
	}

	elapsed := time.Since(c.start)
	if err := stream.Close(handlers.NewExecution(elapsed)); err != nil {
		observability.RecordFailure(c.ctx, c.span, c.logger, errorCounter, c.opName, "closing result stream", err)
		return
	}
	c.complete(elapsed, i)
}

func parseDelay(v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%w, got %q", errInvalidDelay, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrCancelled):
		return handlers.StatusClientClosedRequest
	case errors.Is(err, ErrEvaluationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidStep),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidDelay),
		errors.Is(err, validation.ErrLimitExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
