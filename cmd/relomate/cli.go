package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/relomate/relomate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Metros  relomate.MetroService
	Chatter relomate.Chatter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ask     AskCmd     `cmd:"" help:"Ask a single question about the rental data"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive chat in the terminal"`
	Serve   ServeCmd   `cmd:"" help:"Serve the chat widget over HTTP"`
	Top     TopCmd     `cmd:"" help:"List the cheapest (or most expensive) metros"`
	Compare CompareCmd `cmd:"" help:"Compare two metros by current rent"`
	States  StatesCmd  `cmd:"" help:"List the states present in the dataset"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask (quote multi-word questions)"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"localhost:8799" env:"RELOMATE_ADDR" help:"Host and port to listen on"`
}

// TopCmd is the "top" subcommand.
type TopCmd struct {
	Expensive bool   `short:"e" help:"List the most expensive metros instead"`
	State     string `short:"s" help:"Filter to a 2-letter state code"`
	Limit     int    `default:"10" help:"Number of metros to list"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	A string `arg:"" help:"First metro name"`
	B string `arg:"" help:"Second metro name"`
}

// StatesCmd is the "states" subcommand.
type StatesCmd struct{}
