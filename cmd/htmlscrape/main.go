package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/cudev/htmlscrape"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := newParser(cli, stdout, stderr)
	if err != nil {
		return err
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return htmlscrape.WrapError(htmlscrape.ECONFIG, err, "parsing arguments")
	}

	// Usage goes to stderr when it accompanies an error.
	if cli.URL == "" {
		if help, err := newParser(&CLI{}, stderr, stderr); err == nil {
			_, _ = help.Parse([]string{"--help"})
		}
		return htmlscrape.Errorf(htmlscrape.ECONFIG, "no URL provided (pass it as an argument or set %s)", URLEnv)
	}

	cmd := &ScrapeCmd{CLI: cli, Stdout: stdout, Stderr: stderr}
	return cmd.Run(ctx)
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	parser, err := kong.New(cli,
		kong.Name("htmlscrape"),
		kong.Description("Scrape a single web page: text blocks, links and title"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	return parser, nil
}
