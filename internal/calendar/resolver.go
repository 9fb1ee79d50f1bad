package calendar

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"thainews/internal/logger"
)

// Source is one tier of the resolution chain.
type Source interface {
	Name() string
	Observances(ctx context.Context, year, month int) ([]Observance, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc struct {
	SourceName string
	Fn         func(ctx context.Context, year, month int) ([]Observance, error)
}

func (f SourceFunc) Name() string { return f.SourceName }

func (f SourceFunc) Observances(ctx context.Context, year, month int) ([]Observance, error) {
	return f.Fn(ctx, year, month)
}

// Result is the outcome of a resolution. Source is empty when every tier came up dry.
type Result struct {
	Observances []Observance `json:"observances"`
	Source      string       `json:"source,omitempty"`
}

// Resolver tries its sources in order and returns the first non-empty answer.
type Resolver struct {
	sources []Source
}

// NewResolver creates a Resolver over sources, most precise first.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve never fails: tier errors are logged and skipped, and exhausting every
// tier yields an empty list.
func (r *Resolver) Resolve(ctx context.Context, year, month int) Result {
	res := Result{Observances: []Observance{}}
	if !validMonth(year, month) {
		return res
	}
	for _, s := range r.sources {
		obs, err := attempt(ctx, s, year, month)
		if err != nil {
			logger.Log.Debug("Calendar tier failed",
				zap.String("source", s.Name()),
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Error(err))
			continue
		}
		if len(obs) == 0 {
			logger.Log.Debug("Calendar tier empty", zap.String("source", s.Name()),
				zap.Int("year", year), zap.Int("month", month))
			continue
		}
		res.Observances = obs
		res.Source = s.Name()
		return res
	}
	return res
}

// WanPhra returns the observance days of the month.
func (r *Resolver) WanPhra(ctx context.Context, year, month int) []Observance {
	return r.Resolve(ctx, year, month).Observances
}

func attempt(ctx context.Context, s Source, year, month int) (obs []Observance, err error) {
	defer func() {
		if p := recover(); p != nil {
			obs, err = nil, fmt.Errorf("source %s panicked: %v", s.Name(), p)
		}
	}()
	return s.Observances(ctx, year, month)
}
