package main

import (
	"fmt"

	"github.com/relomate/relomate"
)

// Run executes the states command.
func (c *StatesCmd) Run(deps *Dependencies) error {
	states, err := deps.Metros.States(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relomate.ErrorMessage(err))
		return err
	}

	if len(states) == 0 {
		fmt.Fprintln(deps.Stdout, "No state-level entries in the dataset.")
		return nil
	}

	for _, s := range states {
		fmt.Fprintln(deps.Stdout, s)
	}
	return nil
}
