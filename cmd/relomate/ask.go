package main

import (
	"fmt"

	"github.com/relomate/relomate"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	reply, err := deps.Chatter.Chat(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relomate.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, reply)
	return nil
}
