package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvql/internal/cli/config"
	"github.com/leapstack-labs/csvql/internal/engine"
	"github.com/leapstack-labs/csvql/pkg/parser"
)

const (
	replPrompt         = "csvql> "
	replContinuePrompt = "  ...> "
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var dotCommands = []string{".help", ".sources", ".format", ".clear", ".quit", ".exit"}

func runQueryREPL(cmd *cobra.Command, cmdCtx *CommandContext, format string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newKeywordCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "csvql REPL (data: %s)\n", cmdCtx.Engine.DataDir())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := &replSession{
		engine: cmdCtx.Engine,
		format: format,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	return session.run(cmd.Context(), rl)
}

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// run reads lines until .quit, end of input, or a read error.
func (s *replSession) run(ctx context.Context, rl lineReader) error {
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			s.reset()
			rl.SetPrompt(replPrompt)
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.handleLine(ctx, line) {
			return nil
		}
		if s.pending() {
			rl.SetPrompt(replContinuePrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

// historyFile returns the REPL history path, or "" to keep no history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "csvql")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "query_history")
}

// replSession holds the state of one interactive session. Queries are
// buffered across lines until one ends with a semicolon.
type replSession struct {
	engine *engine.Engine
	format string
	out    io.Writer
	errOut io.Writer
	buf    strings.Builder
}

func (s *replSession) reset() { s.buf.Reset() }

func (s *replSession) pending() bool { return s.buf.Len() > 0 }

// handleLine processes one input line and reports whether the session should end.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	// Handle dot-commands
	if !s.pending() && strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	// Accumulate multi-line queries until semicolon
	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}

	// The semicolon only terminates input; it is not part of the language.
	query := strings.TrimSuffix(s.buf.String(), ";")
	s.buf.Reset()

	if err := executeAndRender(ctx, s.out, s.engine, query, s.format); err != nil {
		_, _ = fmt.Fprintln(s.errOut, errorStyle.Render("Error: "+err.Error()))
	}
	_, _ = fmt.Fprintln(s.out)
	return false
}

func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".sources":
		files, err := listSources(s.engine.DataDir())
		if err != nil {
			_, _ = fmt.Fprintln(s.errOut, errorStyle.Render("Error: "+err.Error()))
			return false
		}
		if len(files) == 0 {
			_, _ = fmt.Fprintln(s.out, mutedStyle.Render("(no CSV files)"))
		}
		for _, f := range files {
			_, _ = fmt.Fprintln(s.out, f)
		}

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "format: %s\n", s.format)
			return false
		}
		if !slices.Contains(config.OutputFormats, parts[1]) {
			_, _ = fmt.Fprintf(s.errOut, "Unknown format: %s (expected one of %s)\n", parts[1], strings.Join(config.OutputFormats, ", "))
			return false
		}
		s.format = parts[1]

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

// listSources returns the CSV files under dir, relative to it.
func listSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files, err
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .sources        List CSV files in the data directory
  .format [name]  Show or set the output format (table, json, yaml, csv, md)
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - Queries must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for keywords
`
	_, _ = fmt.Fprintln(w, help)
}

// keywordCompleter completes csvql keywords and, at the start of a line,
// dot-commands. Completions follow the case of what was typed.
type keywordCompleter struct {
	keywords []string
}

func newKeywordCompleter() *keywordCompleter {
	return &keywordCompleter{keywords: parser.DescribeLanguage().Completions}
}

// Do implements readline.AutoCompleter.
func (c *keywordCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	candidates := c.keywords
	if strings.HasPrefix(prefix, ".") {
		if strings.TrimSpace(string(line[:start])) != "" {
			return nil, 0
		}
		candidates = dotCommands
	}

	lower := prefix != "" && prefix == strings.ToLower(prefix)
	var out [][]rune
	for _, word := range candidates {
		if !strings.HasPrefix(word, strings.ToUpper(prefix)) && !strings.HasPrefix(word, prefix) {
			continue
		}
		if lower {
			word = strings.ToLower(word)
		}
		out = append(out, []rune(word[len(prefix):]+" "))
	}
	return out, len([]rune(prefix))
}

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
