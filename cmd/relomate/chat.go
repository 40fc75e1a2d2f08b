package main

import (
	"github.com/relomate/relomate"
	"github.com/relomate/relomate/bubbletea"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	return bubbletea.Run(deps.Ctx, deps.Chatter, relomate.IntroMessage)
}
