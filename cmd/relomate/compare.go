package main

import (
	"fmt"
	"math"

	"github.com/relomate/relomate"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	a, err := deps.Metros.FindMetroByName(deps.Ctx, c.A)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relomate.ErrorMessage(err))
		return err
	}
	b, err := deps.Metros.FindMetroByName(deps.Ctx, c.B)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relomate.ErrorMessage(err))
		return err
	}

	cmp := relomate.Compare(a, b)
	fmt.Fprintf(deps.Stdout, "%s (%s): $%.0f/mo\n", cmp.A.Name, cmp.A.State, cmp.A.CurrentRent)
	fmt.Fprintf(deps.Stdout, "%s (%s): $%.0f/mo\n", cmp.B.Name, cmp.B.State, cmp.B.CurrentRent)

	switch {
	case cmp.RentDiff > 0:
		fmt.Fprintf(deps.Stdout, "%s is about $%.0f more expensive per month.\n", cmp.B.Name, cmp.RentDiff)
	case cmp.RentDiff < 0:
		fmt.Fprintf(deps.Stdout, "%s is about $%.0f less expensive per month.\n", cmp.B.Name, math.Abs(cmp.RentDiff))
	default:
		fmt.Fprintln(deps.Stdout, "Both metros have similar rent levels in this dataset.")
	}
	return nil
}
