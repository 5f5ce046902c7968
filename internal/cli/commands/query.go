package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/csvql/internal/cli/config"
	"github.com/leapstack-labs/csvql/internal/engine"
)

var (
	// errNoQuery is returned when stdin is a terminal and no query was given.
	errNoQuery = errors.New("no query given (pass it as an argument, with --input, or on stdin)")
	// errEmptyInput is returned when piped stdin holds no query.
	errEmptyInput = errors.New("no query given: stdin is empty")
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
	Watch  bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [QUERY]",
		Short: "Run a query against CSV files",
		Long: `Run a csvql query against CSV files in the data directory.

The query is read from the arguments, from the file given with --input, or
from stdin when it is piped. When invoked without a query on a terminal,
enters interactive REPL mode.`,
		Example: `  # Filter a CSV file
  csvql query "IMPORT sales FROM 'sales.csv' SELECT * FROM sales WHERE amount <= '80078'"

  # Read the query from a file and print JSON
  csvql query --input report.csvql --format json

  # Re-run whenever the source file changes
  csvql query --watch "SELECT * FROM 'sales.csv' WHERE region = 'EU'"

  # Interactive mode
  csvql query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultOutput, "Output format: table, json, yaml, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read the query from file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the query when a source file changes")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	format := cmdCtx.Cfg.Output
	if cmd.Flags().Changed("format") {
		format = opts.Format
	}

	query, err := readQueryText(cmd, args, opts.Input)
	if errors.Is(err, errNoQuery) {
		if opts.Watch {
			return fmt.Errorf("--watch needs a query: %w", err)
		}
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, cmdCtx, format)
	}
	if err != nil {
		return err
	}

	if opts.Watch {
		return runWatch(cmd.Context(), cmd, cmdCtx, query, format)
	}

	return executeAndRender(cmd.Context(), cmd.OutOrStdout(), cmdCtx.Engine, query, format)
}

// readQueryText returns the query from args, the input file, or piped stdin.
// It returns errNoQuery when stdin is a terminal and nothing else was given,
// and errEmptyInput when piped stdin is blank.
func readQueryText(cmd *cobra.Command, args []string, input string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return "", errNoQuery
	}

	// Read from stdin (piped input)
	content, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return "", errEmptyInput
	}
	return string(content), nil
}

func executeAndRender(ctx context.Context, w io.Writer, eng *engine.Engine, query, format string) error {
	res, err := eng.Query(ctx, query)
	if err != nil {
		return err
	}
	return renderRecords(w, res.Records, format)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
