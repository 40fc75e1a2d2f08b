package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/relomate/relomate"
	"github.com/relomate/relomate/chat"
	"github.com/relomate/relomate/csv"
	"github.com/relomate/relomate/gemini"
	"github.com/relomate/relomate/ollama"
	relomateslog "github.com/relomate/relomate/slog"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Dataset path. Set before calling Run().
	DataPath string

	// Metro table loaded from the dataset, exposed for end-to-end tests.
	Metros relomate.MetroService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataPath: defaultDataPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Optional .env for local configuration; absence is fine.
	_ = godotenv.Load()

	logger := newLogger(stderr)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("relomate"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'relomate --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// A missing or malformed dataset is fatal no matter the command.
	metros, err := csv.Open(m.DataPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set RELOMATE_DATA to point at the cleaned rent dataset CSV")
		return err
	}
	m.Metros = metros
	deps.Metros = metros

	// Chat-style commands get the full engine, with a model backend when
	// one is configured. Without one, replies stay unpolished.
	switch cmd {
	case "ask", "serve":
		polisher, err := newPolisher(ctx, logger)
		if err != nil {
			return err
		}
		engine := &chat.Engine{Metros: metros, Polisher: polisher}
		deps.Chatter = relomateslog.NewLoggingChatter(engine, logger)
	case "chat":
		// The TUI owns the terminal; route logs nowhere or they tear it up.
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		polisher, err := newPolisher(ctx, quiet)
		if err != nil {
			return err
		}
		deps.Chatter = &chat.Engine{Metros: metros, Polisher: polisher}
	}

	return kongCtx.Run(deps)
}

// newPolisher picks the model backend from the environment: Gemini when an
// API key is present, a local Ollama model as the fallback, nil otherwise.
func newPolisher(ctx context.Context, logger *slog.Logger) (relomate.Polisher, error) {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		p := gemini.NewPolisher(client, os.Getenv("RELOMATE_MODEL"))
		return relomateslog.NewLoggingPolisher(p, logger), nil
	}

	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		p := ollama.NewPolisher(os.Getenv("OLLAMA_HOST"), model)
		return relomateslog.NewLoggingPolisher(p, logger), nil
	}

	return nil, nil
}

func newLogger(stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("RELOMATE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDataPath() string {
	if path := os.Getenv("RELOMATE_DATA"); path != "" {
		return path
	}
	return "data/metro_rents.csv"
}
