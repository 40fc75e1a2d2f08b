package csv_test

import (
	"context"
	"strings"
	"testing"

	"github.com/relomate/relomate"
	"github.com/relomate/relomate/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = `City,StateName,2021_Avg_Rent,2022_Avg_Rent,2023_Avg_Rent,2024_Avg_Rent,2025_Avg_Rent,Current_Rent
United States,,1643,1825,1906,1964,2018,2018
"Seattle, WA",WA,1977,2190,2254,2328,2400,2400
"Austin, TX",TX,1542,1838,1788,1716,1658,1658
"Detroit, MI",MI,1226,1324,1395,1464,1526,1526
"Miami, FL",FL,2234,2646,2760,2804,2825,2825
"San Antonio, TX",TX,1258,1396,1420,1408,1396,1396
"Nowhere, XX",XX,1000,1000,1000,1000,,
"Fresh, NV",NV,,,1500,1600,1700,1700
`

func newService(t *testing.T) *csv.MetroService {
	t.Helper()
	s, err := csv.Parse(strings.NewReader(testData))
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("row count equals input rows minus header and dropped rows", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		// 8 data rows, one dropped for missing current rent, plus the
		// aggregate row which FindMetros excludes by default.
		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{})
		require.NoError(t, err)
		assert.Len(t, metros, 6)

		all, err := s.FindMetros(context.Background(), relomate.MetroFilter{IncludeAggregate: true})
		require.NoError(t, err)
		assert.Len(t, all, 7)
	})

	t.Run("empty input fails", func(t *testing.T) {
		t.Parallel()

		_, err := csv.Parse(strings.NewReader(""))
		require.Error(t, err)
		assert.Equal(t, relomate.EINVALID, relomate.ErrorCode(err))
	})

	t.Run("missing required column fails", func(t *testing.T) {
		t.Parallel()

		_, err := csv.Parse(strings.NewReader("City,2021_Avg_Rent\nSeattle,1977\n"))
		require.Error(t, err)
		assert.Equal(t, relomate.EINVALID, relomate.ErrorCode(err))
	})

	t.Run("header only fails", func(t *testing.T) {
		t.Parallel()

		_, err := csv.Parse(strings.NewReader("City,StateName,Current_Rent\n"))
		require.Error(t, err)
		assert.Equal(t, relomate.EINVALID, relomate.ErrorCode(err))
	})

	t.Run("malformed row fails", func(t *testing.T) {
		t.Parallel()

		_, err := csv.Parse(strings.NewReader("City,StateName,Current_Rent\nSeattle,WA,2400,extra\n"))
		require.Error(t, err)
		assert.Equal(t, relomate.EINVALID, relomate.ErrorCode(err))
	})

	t.Run("derives growth and trend", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		m, err := s.FindMetroByName(context.Background(), "Miami, FL")
		require.NoError(t, err)
		// 2022 -> current: (2825-2646)/2646 ~ +6.8%, inside the flat band.
		assert.InDelta(t, 6.77, m.PctChange3Yr, 0.01)
		assert.Equal(t, relomate.TrendFlat, m.Trend)

		riser, err := s.FindMetroByName(context.Background(), "Detroit, MI")
		require.NoError(t, err)
		// (1526-1324)/1324 ~ +15.3%.
		assert.Equal(t, relomate.TrendRising, riser.Trend)

		faller, err := s.FindMetroByName(context.Background(), "Austin, TX")
		require.NoError(t, err)
		// (1658-1838)/1838 ~ -9.8%.
		assert.Equal(t, relomate.TrendFalling, faller.Trend)
	})

	t.Run("strictly increasing series is never falling", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		// Seattle increases every year in the fixture.
		m, err := s.FindMetroByName(context.Background(), "Seattle, WA")
		require.NoError(t, err)
		assert.NotEqual(t, relomate.TrendFalling, m.Trend)
		assert.Greater(t, m.PctChange3Yr, 0.0)
		assert.Greater(t, m.PctChange5Yr, 0.0)
	})

	t.Run("missing baseline year yields unknown trend", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		m, err := s.FindMetroByName(context.Background(), "Fresh, NV")
		require.NoError(t, err)
		assert.Equal(t, relomate.TrendUnknown, m.Trend)
	})
}

func TestMetroService_FindMetros(t *testing.T) {
	t.Parallel()

	t.Run("cheapest sorted ascending with table minimum first", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{SortBy: relomate.SortByRentAsc})
		require.NoError(t, err)
		require.NotEmpty(t, metros)

		assert.Equal(t, "San Antonio, TX", metros[0].Name)
		for i := 1; i < len(metros); i++ {
			assert.LessOrEqual(t, metros[i-1].CurrentRent, metros[i].CurrentRent)
		}
	})

	t.Run("budget filter returns only rows at or below threshold", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		budget := 1700.0
		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{MaxRent: &budget})
		require.NoError(t, err)
		require.NotEmpty(t, metros)
		for _, m := range metros {
			assert.LessOrEqual(t, m.CurrentRent, budget)
		}
		// Exactly the rows at or below the threshold.
		assert.Len(t, metros, 4)
	})

	t.Run("state filter", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		state := "tx"
		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{State: &state})
		require.NoError(t, err)
		require.Len(t, metros, 2)
		for _, m := range metros {
			assert.Equal(t, "TX", m.State)
		}
	})

	t.Run("growth sort skips metros without a baseline", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{SortBy: relomate.SortByGrowth3YrDsc})
		require.NoError(t, err)
		for _, m := range metros {
			assert.NotEqual(t, "Fresh, NV", m.Name)
		}
		for i := 1; i < len(metros); i++ {
			assert.GreaterOrEqual(t, metros[i-1].PctChange3Yr, metros[i].PctChange3Yr)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		metros, err := s.FindMetros(context.Background(), relomate.MetroFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, metros, 2)
	})
}

func TestMetroService_FindMetroByName(t *testing.T) {
	t.Parallel()

	t.Run("exact match case-insensitive", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		m, err := s.FindMetroByName(context.Background(), "seattle, wa")
		require.NoError(t, err)
		assert.Equal(t, "Seattle, WA", m.Name)
	})

	t.Run("substring match", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		m, err := s.FindMetroByName(context.Background(), "Austin")
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", m.Name)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		s := newService(t)

		_, err := s.FindMetroByName(context.Background(), "Springfield")
		require.Error(t, err)
		assert.Equal(t, relomate.ENOTFOUND, relomate.ErrorCode(err))
	})
}

func TestMetroService_States(t *testing.T) {
	t.Parallel()

	s := newService(t)

	states, err := s.States(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"FL", "MI", "NV", "TX", "WA"}, states)
}

func TestMetroService_Overview(t *testing.T) {
	t.Parallel()

	s := newService(t)

	ov, err := s.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, ov.Metros)
	assert.Equal(t, 5, ov.States)
	assert.InDelta(t, 1396, ov.MinRent, 0.001)
	assert.InDelta(t, 2825, ov.MaxRent, 0.001)
	assert.Greater(t, ov.MeanRent, ov.MinRent)
	assert.Less(t, ov.MeanRent, ov.MaxRent)
	assert.Greater(t, ov.MedianRent, 0.0)
	assert.Greater(t, ov.StdDevRent, 0.0)
}
