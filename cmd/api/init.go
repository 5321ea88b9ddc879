package main

import (
	"context"

	"chi-reactor-workshop/internal/arithseq"
	"chi-reactor-workshop/internal/observability"
	"chi-reactor-workshop/internal/polyeval"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := arithseq.InitMetrics(); err != nil {
		return nil, err
	}
	if err := polyeval.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
