package main

import (
	"fmt"
	"strings"

	"github.com/relomate/relomate"
)

// Run executes the top command.
func (c *TopCmd) Run(deps *Dependencies) error {
	sortBy := relomate.SortByRentAsc
	if c.Expensive {
		sortBy = relomate.SortByRentDesc
	}

	filter := relomate.MetroFilter{SortBy: sortBy, Limit: c.Limit}
	if c.State != "" {
		state := strings.ToUpper(c.State)
		if !relomate.IsUSState(state) {
			fmt.Fprintf(deps.Stderr, "error: %q is not a US state code\n", c.State)
			return relomate.Errorf(relomate.EINVALID, "invalid state code %q", c.State)
		}
		filter.State = &state
	}

	metros, err := deps.Metros.FindMetros(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relomate.ErrorMessage(err))
		return err
	}

	if len(metros) == 0 {
		fmt.Fprintln(deps.Stdout, "No metros found for that filter.")
		return nil
	}

	for _, m := range metros {
		fmt.Fprintf(deps.Stdout, "%-40s %s  $%.0f/mo  %s\n", m.Name, m.State, m.CurrentRent, m.Trend)
	}
	return nil
}
