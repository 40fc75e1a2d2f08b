package main

import (
	"fmt"

	relogin "github.com/relomate/relomate/gin"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := relogin.NewServer(deps.Chatter)

	fmt.Fprintf(deps.Stdout, "Serving the chat widget on http://%s\n", c.Addr)
	deps.Logger.Info("server starting", "addr", c.Addr)

	if err := server.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	deps.Logger.Info("server stopped")
	return nil
}
