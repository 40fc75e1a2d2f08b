package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/relomate/relomate/cmd/relomate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainTestData = `City,StateName,2021_Avg_Rent,2022_Avg_Rent,2023_Avg_Rent,2024_Avg_Rent,2025_Avg_Rent,Current_Rent
United States,,1850,1940,2010,2060,2100,2100
"Austin, TX",TX,1980,2110,1930,1760,1658,1658
"Seattle, WA",WA,2050,2180,2290,2350,2400,2400
"Detroit, MI",MI,1210,1290,1380,1460,1526,1526
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metro_rents.csv")
	require.NoError(t, os.WriteFile(path, []byte(mainTestData), 0o600))
	return path
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no command returns an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("missing dataset is fatal", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DataPath = filepath.Join(t.TempDir(), "does-not-exist.csv")

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"states"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "RELOMATE_DATA")
	})

	t.Run("states runs end to end against a dataset", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DataPath = writeDataset(t)

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"states"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "MI\nTX\nWA\n", stdout.String())
	})

	t.Run("top excludes the national aggregate", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DataPath = writeDataset(t)

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"top", "--limit", "1"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Detroit, MI")
		assert.NotContains(t, stdout.String(), "United States")
	})
}
