// Package engine compiles csvql queries and executes them against CSV files.
// Each scan runs in its own sandbox that can read exactly one file inside the
// configured data directory.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/parser"
	"github.com/leapstack-labs/csvql/pkg/plan"
)

// Engine compiles and runs queries. It holds only immutable configuration and
// is safe for concurrent use.
type Engine struct {
	dataDir   string
	delimiter rune
	logger    *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// DataDir is the directory query paths resolve against. Empty means the
	// working directory.
	DataDir string
	// Delimiter is the CSV field separator. Zero means ','.
	Delimiter rune
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result is the outcome of one query.
type Result struct {
	ID      string        `json:"id"`
	Records []core.Record `json:"records"`
}

// New creates an engine rooted at cfg.DataDir.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", abs)
	}

	delim := cfg.Delimiter
	if delim == 0 {
		delim = ','
	}
	if !validDelimiter(delim) {
		return nil, fmt.Errorf("invalid delimiter %q", delim)
	}

	logger.Debug("initializing engine", "data_dir", abs, "delimiter", string(delim))

	return &Engine{dataDir: abs, delimiter: delim, logger: logger}, nil
}

// DataDir returns the absolute data directory.
func (e *Engine) DataDir() string {
	return e.dataDir
}

// Compile tokenizes, parses and lowers query text into a plan. It reads no
// files.
func (e *Engine) Compile(query string) (*plan.Plan, error) {
	prog, err := parser.ParseString(query)
	if err != nil {
		return nil, err
	}
	return plan.Generate(prog)
}

// Execute runs every scan of p in order and concatenates the matching
// records. Any failure discards all rows read so far.
func (e *Engine) Execute(ctx context.Context, p *plan.Plan) ([]core.Record, error) {
	return e.execute(ctx, p, e.logger)
}

// Query compiles and executes query text. The result ID is taken from ctx
// (see WithQueryID) or generated.
func (e *Engine) Query(ctx context.Context, query string) (*Result, error) {
	id := QueryIDFromContext(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	logger := e.logger.With("query_id", id)
	start := time.Now()

	p, err := e.Compile(query)
	if err != nil {
		logger.Debug("query failed to compile", "error", err)
		return nil, err
	}

	records, err := e.execute(ctx, p, logger)
	if err != nil {
		logger.Debug("query failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	logger.Debug("query completed", "rows", len(records), "duration", time.Since(start))
	return &Result{ID: id, Records: records}, nil
}

func (e *Engine) execute(ctx context.Context, p *plan.Plan, logger *slog.Logger) ([]core.Record, error) {
	records := []core.Record{}
	for _, scan := range p.Scans() {
		rows, err := e.scan(ctx, scan, logger)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}
	return records, nil
}

// scan reads one source through a fresh sandbox.
func (e *Engine) scan(ctx context.Context, s *plan.Scan, logger *slog.Logger) ([]core.Record, error) {
	sb, err := e.newSandbox(s.Path)
	if err != nil {
		return nil, core.NewExecutionError(err, "cannot read %q", s.Path)
	}

	logger.Debug("scanning source", "source", s.Source, "path", sb.source.Name())

	rc, err := sb.source.Open()
	if err != nil {
		return nil, core.NewExecutionError(err, "cannot read %q", s.Path)
	}
	defer func() { _ = rc.Close() }()

	rows := sb.decoder.NewRows(rc)
	var out []core.Record
	read := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, core.NewExecutionError(err, "scan of %q interrupted", s.Path)
		}

		rec, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewExecutionError(err, "cannot decode %q", s.Path)
		}
		read++

		if s.Predicate.Match(rec) {
			out = append(out, rec)
		}
	}

	logger.Debug("scan finished", "path", s.Path, "rows_read", read, "rows_matched", len(out))
	return out, nil
}

func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
