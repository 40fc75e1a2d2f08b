// Package csv provides the dataset-backed implementation of
// relomate.MetroService. It parses the cleaned rent CSV once at startup
// and serves all queries from the resulting in-memory table.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/relomate/relomate"
	"gonum.org/v1/gonum/stat"
)

// Required header columns. Year columns (e.g. 2021_Avg_Rent) are optional.
const (
	colName    = "City"
	colState   = "StateName"
	colCurrent = "Current_Rent"
)

var yearColRe = regexp.MustCompile(`^(\d{4})_Avg_Rent$`)

// Ensure MetroService implements relomate.MetroService at compile time.
var _ relomate.MetroService = (*MetroService)(nil)

// MetroService serves metro queries from an immutable in-memory table.
type MetroService struct {
	metros []*relomate.Metro
	states []string
}

// Open loads the dataset from a file path. The error is fatal to the
// caller: a missing or malformed dataset means the process cannot serve.
func Open(path string) (*MetroService, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %q: %w", path, err)
	}
	return s, nil
}

// Parse reads the dataset from r and builds the table. It fails on an
// empty input, a header missing required columns, or a table that ends up
// with no usable rows.
func Parse(r io.Reader) (*MetroService, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, relomate.Errorf(relomate.EINVALID, "dataset is empty")
	} else if err != nil {
		return nil, relomate.Errorf(relomate.EINVALID, "dataset header is malformed: %v", err)
	}

	cols := make(map[string]int, len(header))
	years := make(map[int]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		cols[name] = i
		if m := yearColRe.FindStringSubmatch(name); m != nil {
			year, _ := strconv.Atoi(m[1])
			years[year] = i
		}
	}
	for _, required := range []string{colName, colState, colCurrent} {
		if _, ok := cols[required]; !ok {
			return nil, relomate.Errorf(relomate.EINVALID, "dataset header is missing column %q", required)
		}
	}

	var metros []*relomate.Metro
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, relomate.Errorf(relomate.EINVALID, "dataset row %d is malformed: %v", len(metros)+2, err)
		}

		name := strings.TrimSpace(record[cols[colName]])
		if name == "" {
			continue
		}
		current := parseRent(record[cols[colCurrent]])
		if math.IsNaN(current) {
			// Mirrors the dataset cleaning step: regions without a
			// current rent cannot be ranked and are dropped.
			continue
		}

		m := &relomate.Metro{
			Name:        name,
			State:       strings.ToUpper(strings.TrimSpace(record[cols[colState]])),
			YearlyRent:  make(map[int]float64, len(years)),
			CurrentRent: current,
		}
		for year, idx := range years {
			if v := parseRent(record[idx]); !math.IsNaN(v) {
				m.YearlyRent[year] = v
			}
		}
		deriveGrowth(m)
		metros = append(metros, m)
	}

	if len(metros) == 0 {
		return nil, relomate.Errorf(relomate.EINVALID, "dataset contains no usable rows")
	}

	return &MetroService{metros: metros, states: stateList(metros)}, nil
}

// parseRent converts a rent cell to a float, NaN when empty or unparsable.
func parseRent(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// deriveGrowth computes the change columns and trend label.
// 3-year figures compare 2022 to current, 5-year figures 2021 to current.
func deriveGrowth(m *relomate.Metro) {
	m.Change3Yr, m.PctChange3Yr = changeFrom(m, 2022)
	m.Change5Yr, m.PctChange5Yr = changeFrom(m, 2021)

	switch {
	case math.IsNaN(m.PctChange3Yr):
		m.Trend = relomate.TrendUnknown
	case m.PctChange3Yr > 10:
		m.Trend = relomate.TrendRising
	case m.PctChange3Yr < -5:
		m.Trend = relomate.TrendFalling
	default:
		m.Trend = relomate.TrendFlat
	}
}

func changeFrom(m *relomate.Metro, baseYear int) (change, pct float64) {
	base, ok := m.YearlyRent[baseYear]
	if !ok || base == 0 {
		return math.NaN(), math.NaN()
	}
	change = m.CurrentRent - base
	return change, change / base * 100
}

func stateList(metros []*relomate.Metro) []string {
	seen := make(map[string]bool)
	for _, m := range metros {
		if m.Name == relomate.AggregateName || m.State == "" {
			continue
		}
		seen[m.State] = true
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// FindMetros retrieves metros matching the filter.
func (s *MetroService) FindMetros(_ context.Context, filter relomate.MetroFilter) ([]*relomate.Metro, error) {
	var out []*relomate.Metro
	for _, m := range s.metros {
		if !filter.IncludeAggregate && m.Name == relomate.AggregateName {
			continue
		}
		if filter.State != nil && m.State != strings.ToUpper(*filter.State) {
			continue
		}
		if filter.MaxRent != nil && m.CurrentRent > *filter.MaxRent {
			continue
		}
		if filter.Trend != nil && m.Trend != *filter.Trend {
			continue
		}
		if skipForSort(m, filter.SortBy) {
			continue
		}
		out = append(out, m)
	}

	sortMetros(out, filter.SortBy)

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// skipForSort drops rows whose sort key is unavailable, so growth listings
// never contain metros without a baseline year.
func skipForSort(m *relomate.Metro, order relomate.SortOrder) bool {
	switch order {
	case relomate.SortByGrowth3YrAsc, relomate.SortByGrowth3YrDsc:
		return math.IsNaN(m.PctChange3Yr)
	case relomate.SortByGrowth5YrAsc, relomate.SortByGrowth5YrDsc:
		return math.IsNaN(m.PctChange5Yr)
	}
	return false
}

func sortMetros(metros []*relomate.Metro, order relomate.SortOrder) {
	var less func(a, b *relomate.Metro) bool
	switch order {
	case relomate.SortByRentDesc:
		less = func(a, b *relomate.Metro) bool { return a.CurrentRent > b.CurrentRent }
	case relomate.SortByGrowth3YrAsc:
		less = func(a, b *relomate.Metro) bool { return a.PctChange3Yr < b.PctChange3Yr }
	case relomate.SortByGrowth3YrDsc:
		less = func(a, b *relomate.Metro) bool { return a.PctChange3Yr > b.PctChange3Yr }
	case relomate.SortByGrowth5YrAsc:
		less = func(a, b *relomate.Metro) bool { return a.PctChange5Yr < b.PctChange5Yr }
	case relomate.SortByGrowth5YrDsc:
		less = func(a, b *relomate.Metro) bool { return a.PctChange5Yr > b.PctChange5Yr }
	default: // SortByRentAsc
		less = func(a, b *relomate.Metro) bool { return a.CurrentRent < b.CurrentRent }
	}
	sort.SliceStable(metros, func(i, j int) bool { return less(metros[i], metros[j]) })
}

// FindMetroByName retrieves a metro by name, case-insensitively. Exact
// matches win; otherwise the first substring match is returned.
func (s *MetroService) FindMetroByName(_ context.Context, name string) (*relomate.Metro, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, relomate.Errorf(relomate.EINVALID, "metro name required")
	}

	for _, m := range s.metros {
		if strings.ToLower(m.Name) == needle {
			return m, nil
		}
	}
	for _, m := range s.metros {
		if m.Name == relomate.AggregateName {
			continue
		}
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m, nil
		}
	}
	return nil, relomate.Errorf(relomate.ENOTFOUND, "metro %q not found", name)
}

// States returns the sorted state codes present in the table.
func (s *MetroService) States(_ context.Context) ([]string, error) {
	out := make([]string, len(s.states))
	copy(out, s.states)
	return out, nil
}

// Overview summarizes current rents across the table, excluding the
// nationwide aggregate row.
func (s *MetroService) Overview(_ context.Context) (*relomate.MarketOverview, error) {
	var rents []float64
	for _, m := range s.metros {
		if m.Name == relomate.AggregateName {
			continue
		}
		rents = append(rents, m.CurrentRent)
	}
	if len(rents) == 0 {
		return nil, relomate.Errorf(relomate.ENOTFOUND, "no metros in dataset")
	}
	sort.Float64s(rents)

	return &relomate.MarketOverview{
		Metros:     len(rents),
		States:     len(s.states),
		MeanRent:   stat.Mean(rents, nil),
		MedianRent: stat.Quantile(0.5, stat.Empirical, rents, nil),
		StdDevRent: stat.StdDev(rents, nil),
		MinRent:    rents[0],
		MaxRent:    rents[len(rents)-1],
	}, nil
}
