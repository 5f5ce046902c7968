package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchDebounce is how long the watcher waits for writes to settle.
const watchDebounce = 100 * time.Millisecond

// runWatch runs query once, then again each time one of its source files
// changes. Every run is an independent one-shot execution.
func runWatch(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, query, format string) error {
	p, err := cmdCtx.Engine.Compile(query)
	if err != nil {
		return err
	}

	var files []string
	for _, src := range p.Sources() {
		rel, err := cmdCtx.Engine.Resolve(src)
		if err != nil {
			return fmt.Errorf("cannot watch %q: %w", src, err)
		}
		files = append(files, filepath.Join(cmdCtx.Engine.DataDir(), rel))
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	run := func() {
		if err := executeAndRender(ctx, out, cmdCtx.Engine, query, format); err != nil {
			_, _ = fmt.Fprintln(errOut, errorStyle.Render("Error: "+err.Error()))
		}
	}

	run()
	if len(files) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(errOut, mutedStyle.Render("watching for changes, press Ctrl+C to stop"))

	changes := make(chan string, 1)

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return watchFiles(egctx, files, watchDebounce, cmdCtx.Logger, func(name string) {
			select {
			case changes <- name:
			default:
			}
		})
	})
	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case name := <-changes:
				_, _ = fmt.Fprintln(errOut, mutedStyle.Render(fmt.Sprintf("[%s] %s changed, re-running",
					time.Now().Format("15:04:05"), filepath.Base(name))))
				run()
			}
		}
	})

	return eg.Wait()
}

// watchFiles calls onChange, debounced, whenever one of files is written,
// created or renamed into place. It returns when ctx is done.
func watchFiles(ctx context.Context, files []string, debounce time.Duration, logger *slog.Logger, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories so editors that replace files are seen.
	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		f = filepath.Clean(f)
		wanted[f] = true
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !wanted[name] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				logger.Debug("source changed", "file", name)
				onChange(name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
