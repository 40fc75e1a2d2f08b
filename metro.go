package relomate

import (
	"context"
	"math"
)

// AggregateName is the name of the nationwide aggregate row present in the
// dataset. Queries exclude it unless a filter asks for it explicitly.
const AggregateName = "United States"

// Trend labels the direction of a metro's rent over the 3-year horizon.
type Trend string

// Trend labels derived from the 3-year percent change.
const (
	TrendRising  Trend = "rising"
	TrendFlat    Trend = "flat"
	TrendFalling Trend = "falling"
	TrendUnknown Trend = "unknown"
)

// Horizon selects the time span for growth queries.
type Horizon string

// Supported growth horizons.
const (
	Horizon3Yr Horizon = "3y"
	Horizon5Yr Horizon = "5y"
)

// Direction selects rising or declining markets in growth queries.
type Direction string

// Supported growth directions.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Metro represents one metropolitan statistical area row of the dataset.
// The table is immutable after load; derived fields are computed once by
// the loader. Derived values that cannot be computed are NaN.
type Metro struct {
	Name  string `json:"name"`
	State string `json:"state"`

	// Average monthly rent by calendar year. Years without data are absent.
	YearlyRent map[int]float64 `json:"yearlyRent"`

	// CurrentRent is the value index used for ranking and comparison.
	CurrentRent float64 `json:"currentRent"`

	// Derived at load time. 3-year figures compare 2022 to current,
	// 5-year figures compare 2021 to current.
	Change3Yr    float64 `json:"change3Yr"`
	PctChange3Yr float64 `json:"pctChange3Yr"`
	Change5Yr    float64 `json:"change5Yr"`
	PctChange5Yr float64 `json:"pctChange5Yr"`
	Trend        Trend   `json:"trend"`
}

// Validate returns an error if the metro contains invalid fields.
func (m *Metro) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "metro name required")
	}
	if math.IsNaN(m.CurrentRent) || m.CurrentRent <= 0 {
		return Errorf(EINVALID, "metro %q requires a positive current rent", m.Name)
	}
	return nil
}

// PctChange returns the percent change for the given horizon, or NaN if
// the baseline year is missing from the data.
func (m *Metro) PctChange(h Horizon) float64 {
	if h == Horizon5Yr {
		return m.PctChange5Yr
	}
	return m.PctChange3Yr
}

// Comparison holds the result of comparing two metros by current rent.
type Comparison struct {
	A *Metro `json:"a"`
	B *Metro `json:"b"`

	// RentDiff is B's current rent minus A's. Comparing the same pair in
	// the opposite order yields the same magnitude with inverted sign.
	RentDiff float64 `json:"rentDiff"`
}

// Compare builds a Comparison of two metros.
func Compare(a, b *Metro) Comparison {
	return Comparison{A: a, B: b, RentDiff: b.CurrentRent - a.CurrentRent}
}

// MarketOverview summarizes current rents across the whole table.
type MarketOverview struct {
	Metros     int     `json:"metros"`
	States     int     `json:"states"`
	MeanRent   float64 `json:"meanRent"`
	MedianRent float64 `json:"medianRent"`
	StdDevRent float64 `json:"stdDevRent"`
	MinRent    float64 `json:"minRent"`
	MaxRent    float64 `json:"maxRent"`
}

// SortOrder represents the sort order for metro queries.
type SortOrder string

// SortOrder constants for MetroFilter. Growth sorts skip metros whose
// percent change for the horizon is unavailable.
const (
	SortByRentAsc      SortOrder = "rent_asc"
	SortByRentDesc     SortOrder = "rent_desc"
	SortByGrowth3YrAsc SortOrder = "growth_3y_asc"
	SortByGrowth3YrDsc SortOrder = "growth_3y_desc"
	SortByGrowth5YrAsc SortOrder = "growth_5y_asc"
	SortByGrowth5YrDsc SortOrder = "growth_5y_desc"
)

// MetroFilter represents a filter for FindMetros.
type MetroFilter struct {
	State   *string  `json:"state"`
	MaxRent *float64 `json:"maxRent"`
	Trend   *Trend   `json:"trend"`

	// IncludeAggregate keeps the nationwide aggregate row in results.
	IncludeAggregate bool `json:"includeAggregate"`

	SortBy SortOrder `json:"sortBy"`
	Limit  int       `json:"limit"`
}

// MetroService represents read-only access to the metro table.
type MetroService interface {
	// FindMetros retrieves metros matching the filter.
	FindMetros(ctx context.Context, filter MetroFilter) ([]*Metro, error)

	// FindMetroByName retrieves a metro by name. Matching is
	// case-insensitive: exact match first, then substring.
	// Returns ENOTFOUND if no metro matches.
	FindMetroByName(ctx context.Context, name string) (*Metro, error)

	// States returns the sorted state codes present in the table.
	States(ctx context.Context) ([]string, error)

	// Overview summarizes current rents across the table.
	Overview(ctx context.Context) (*MarketOverview, error)
}
