package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/relomate/relomate"
	main "github.com/relomate/relomate/cmd/relomate"
	"github.com/relomate/relomate/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists cheapest metros by default", func(t *testing.T) {
		t.Parallel()

		var gotFilter relomate.MetroFilter
		metros := &mock.MetroService{
			FindMetrosFn: func(_ context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error) {
				gotFilter = filter
				return []*relomate.Metro{
					{Name: "Austin, TX", State: "TX", CurrentRent: 1658, Trend: relomate.TrendFalling},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Metros: metros,
		}

		cmd := &main.TopCmd{Limit: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, relomate.SortByRentAsc, gotFilter.SortBy)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "Austin, TX")
		assert.Contains(t, stdout.String(), "falling")
	})

	t.Run("expensive flag flips the sort", func(t *testing.T) {
		t.Parallel()

		var gotFilter relomate.MetroFilter
		metros := &mock.MetroService{
			FindMetrosFn: func(_ context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Metros: metros,
		}

		cmd := &main.TopCmd{Expensive: true, Limit: 5}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, relomate.SortByRentDesc, gotFilter.SortBy)
	})

	t.Run("state filter is uppercased", func(t *testing.T) {
		t.Parallel()

		var gotFilter relomate.MetroFilter
		metros := &mock.MetroService{
			FindMetrosFn: func(_ context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Metros: metros,
		}

		cmd := &main.TopCmd{State: "tx", Limit: 10}
		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, gotFilter.State)
		assert.Equal(t, "TX", *gotFilter.State)
	})

	t.Run("rejects invalid state codes", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Metros: &mock.MetroService{},
		}

		cmd := &main.TopCmd{State: "zz", Limit: 10}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, relomate.EINVALID, relomate.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not a US state code")
	})
}
