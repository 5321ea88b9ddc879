package polyeval

import (
	"context"
	"fmt"
	"iter"
	"time"
)

// Stream evaluates steps in order, yielding one Result per tree. When delay is
// positive the stream pauses that long between finishing one tree and
// starting the next. The first error ends the stream; a context cancelled
// during a pause yields ErrCancelled.
func Stream(ctx context.Context, steps []*Step, delay time.Duration) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		for i, step := range steps {
			if i > 0 && delay > 0 {
				if err := pause(ctx, delay); err != nil {
					yield(Result{}, err)
					return
				}
			}

			res, err := Evaluate(step)
			if err != nil {
				yield(Result{}, fmt.Errorf("step %d: %w", i, err))
				return
			}
			if !yield(res, nil) {
				return
			}
		}
	}
}

// EvaluateAll collects Stream. A single failing tree fails the whole batch.
func EvaluateAll(ctx context.Context, steps []*Step, delay time.Duration) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for res, err := range Stream(ctx, steps, delay) {
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case <-t.C:
		return nil
	}
}
