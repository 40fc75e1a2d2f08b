// Package chat implements the rule-based chat engine: it classifies each
// user message, runs the matching query against the metro table, formats a
// deterministic plain-text answer, and optionally polishes it with a
// text-generation model.
package chat

import (
	"context"
	"strings"

	"github.com/relomate/relomate"
)

// DefaultLimit bounds the number of metros in a listing reply.
const DefaultLimit = 10

// Ensure Engine implements relomate.Chatter at compile time.
var _ relomate.Chatter = (*Engine)(nil)

// Engine answers chat messages from the metro table. A nil Polisher is
// valid; replies are then returned unpolished.
type Engine struct {
	Metros   relomate.MetroService
	Polisher relomate.Polisher

	// Limit caps listing replies. Zero means DefaultLimit.
	Limit int
}

// Chat produces the assistant reply for a single user message.
func (e *Engine) Chat(ctx context.Context, message string) (string, error) {
	q := relomate.ClassifyMessage(message)

	switch q.Intent {
	case relomate.IntentGreeting:
		return greetingReply, nil
	case relomate.IntentOffTopic:
		return helpReply, nil
	}

	// A valid US state that is absent from the dataset gets a friendly
	// listing of the states we do cover, whatever the user asked for.
	if q.State != "" {
		states, err := e.Metros.States(ctx)
		if err != nil {
			return "", err
		}
		if !containsState(states, q.State) {
			return formatStateNotInData(q.State, states), nil
		}
	}

	var draft string
	var err error
	switch q.Intent {
	case relomate.IntentCompare:
		draft, err = e.compare(ctx, q)
	case relomate.IntentGrowth:
		draft, err = e.growth(ctx, q)
	case relomate.IntentCheapest:
		draft, err = e.listByRent(ctx, q, relomate.SortByRentAsc)
	case relomate.IntentMostExpensive:
		draft, err = e.listByRent(ctx, q, relomate.SortByRentDesc)
	case relomate.IntentOverview:
		draft, err = e.overview(ctx)
	case relomate.IntentBudget:
		draft, err = e.budget(ctx, q)
	default:
		draft, err = e.browse(ctx, q)
	}
	if err != nil {
		return "", err
	}

	return e.polish(ctx, message, draft), nil
}

// polish runs the draft through the model, degrading to the raw draft on
// any failure or empty output.
func (e *Engine) polish(ctx context.Context, question, draft string) string {
	if e.Polisher == nil {
		return draft
	}
	polished, err := e.Polisher.Polish(ctx, question, draft)
	if err != nil || strings.TrimSpace(polished) == "" {
		return draft
	}
	return polished
}

func (e *Engine) limit() int {
	if e.Limit > 0 {
		return e.Limit
	}
	return DefaultLimit
}

func (e *Engine) compare(ctx context.Context, q relomate.Query) (string, error) {
	a, errA := e.Metros.FindMetroByName(ctx, q.CompareA)
	b, errB := e.Metros.FindMetroByName(ctx, q.CompareB)

	if errA != nil && relomate.ErrorCode(errA) != relomate.ENOTFOUND {
		return "", errA
	}
	if errB != nil && relomate.ErrorCode(errB) != relomate.ENOTFOUND {
		return "", errB
	}

	switch {
	case a == nil && b == nil:
		return formatCompareBothMissing(q.CompareA, q.CompareB), nil
	case a == nil:
		return formatCompareOneMissing(q.CompareA), nil
	case b == nil:
		return formatCompareOneMissing(q.CompareB), nil
	}

	return formatComparison(relomate.Compare(a, b)), nil
}

func (e *Engine) growth(ctx context.Context, q relomate.Query) (string, error) {
	sortBy := relomate.SortByGrowth3YrDsc
	switch {
	case q.Horizon == relomate.Horizon5Yr && q.Direction == relomate.DirectionDown:
		sortBy = relomate.SortByGrowth5YrAsc
	case q.Horizon == relomate.Horizon5Yr:
		sortBy = relomate.SortByGrowth5YrDsc
	case q.Direction == relomate.DirectionDown:
		sortBy = relomate.SortByGrowth3YrAsc
	}

	metros, err := e.Metros.FindMetros(ctx, relomate.MetroFilter{
		State:  stateFilter(q),
		SortBy: sortBy,
		Limit:  e.limit(),
	})
	if err != nil {
		return "", err
	}
	if len(metros) == 0 {
		return "I couldn't find metros matching that growth pattern in the dataset.", nil
	}
	return formatGrowthList(metros, q), nil
}

func (e *Engine) listByRent(ctx context.Context, q relomate.Query, sortBy relomate.SortOrder) (string, error) {
	metros, err := e.Metros.FindMetros(ctx, relomate.MetroFilter{
		State:  stateFilter(q),
		SortBy: sortBy,
		Limit:  e.limit(),
	})
	if err != nil {
		return "", err
	}
	if len(metros) == 0 {
		return "I couldn't find any metros in the dataset for that request.", nil
	}
	return formatRentList(metros, sortBy, q.State), nil
}

func (e *Engine) overview(ctx context.Context) (string, error) {
	ov, err := e.Metros.Overview(ctx)
	if err != nil {
		return "", err
	}
	return formatOverview(ov), nil
}

func (e *Engine) budget(ctx context.Context, q relomate.Query) (string, error) {
	metros, err := e.Metros.FindMetros(ctx, relomate.MetroFilter{
		State:   stateFilter(q),
		MaxRent: &q.Budget,
		SortBy:  relomate.SortByRentAsc,
		Limit:   e.limit(),
	})
	if err != nil {
		return "", err
	}
	if len(metros) == 0 {
		return formatBudgetEmpty(q.Budget), nil
	}
	return formatBudgetList(metros, q), nil
}

// browse handles relocation-related messages without a clear budget by
// showing cheaper metros and asking for one.
func (e *Engine) browse(ctx context.Context, q relomate.Query) (string, error) {
	metros, err := e.Metros.FindMetros(ctx, relomate.MetroFilter{
		State:  stateFilter(q),
		SortBy: relomate.SortByRentAsc,
		Limit:  e.limit(),
	})
	if err != nil {
		return "", err
	}
	if len(metros) == 0 {
		return "I couldn't find any metros in the dataset. Try asking about the cheapest metros or providing a rent budget.", nil
	}
	return formatBrowseList(metros), nil
}

func stateFilter(q relomate.Query) *string {
	if q.State == "" {
		return nil
	}
	state := q.State
	return &state
}

func containsState(states []string, state string) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
