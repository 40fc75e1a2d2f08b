// Package mock provides function-field mock implementations of the domain
// interfaces for testing.
package mock

import (
	"context"

	"github.com/relomate/relomate"
)

var _ relomate.MetroService = (*MetroService)(nil)

// MetroService is a mock implementation of relomate.MetroService.
type MetroService struct {
	FindMetrosFn      func(ctx context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error)
	FindMetroByNameFn func(ctx context.Context, name string) (*relomate.Metro, error)
	StatesFn          func(ctx context.Context) ([]string, error)
	OverviewFn        func(ctx context.Context) (*relomate.MarketOverview, error)
}

func (s *MetroService) FindMetros(ctx context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error) {
	return s.FindMetrosFn(ctx, filter)
}

func (s *MetroService) FindMetroByName(ctx context.Context, name string) (*relomate.Metro, error) {
	return s.FindMetroByNameFn(ctx, name)
}

func (s *MetroService) States(ctx context.Context) ([]string, error) {
	return s.StatesFn(ctx)
}

func (s *MetroService) Overview(ctx context.Context) (*relomate.MarketOverview, error) {
	return s.OverviewFn(ctx)
}
