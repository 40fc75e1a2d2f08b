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

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports the rent gap", func(t *testing.T) {
		t.Parallel()

		metros := &mock.MetroService{
			FindMetroByNameFn: func(_ context.Context, name string) (*relomate.Metro, error) {
				switch name {
				case "Austin":
					return &relomate.Metro{Name: "Austin, TX", State: "TX", CurrentRent: 1658}, nil
				case "Seattle":
					return &relomate.Metro{Name: "Seattle, WA", State: "WA", CurrentRent: 2400}, nil
				}
				return nil, relomate.Errorf(relomate.ENOTFOUND, "metro %q not found", name)
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Metros: metros,
		}

		cmd := &main.CompareCmd{A: "Austin", B: "Seattle"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Austin, TX (TX): $1658/mo")
		assert.Contains(t, out, "Seattle, WA (WA): $2400/mo")
		assert.Contains(t, out, "Seattle, WA is about $742 more expensive per month.")
	})

	t.Run("unknown metro goes to stderr", func(t *testing.T) {
		t.Parallel()

		metros := &mock.MetroService{
			FindMetroByNameFn: func(_ context.Context, name string) (*relomate.Metro, error) {
				return nil, relomate.Errorf(relomate.ENOTFOUND, "metro %q not found", name)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Metros: metros,
		}

		cmd := &main.CompareCmd{A: "Atlantis", B: "Seattle"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, relomate.ENOTFOUND, relomate.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
