package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvql/internal/cli/config"
	"github.com/leapstack-labs/csvql/internal/engine"
)

// CommandContext holds what a command needs to run queries.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Engine *engine.Engine
}

// NewCommandContext creates a CommandContext with an engine built from the
// current configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Engine: eng,
	}, nil
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		DataDir:   config.DefaultDataDir,
		Delimiter: config.DefaultDelimiter,
		Output:    config.DefaultOutput,
		LogLevel:  slog.LevelInfo,
		Server: config.ServerConfig{
			Addr:              config.DefaultServerAddr,
			ReadHeaderTimeout: 10 * time.Second,
			QueryTimeout:      30 * time.Second,
			MaxBodyBytes:      config.DefaultMaxBodyBytes,
		},
	}
}

// createEngine creates an engine from the configuration.
func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	eng, err := engine.New(engine.Config{
		DataDir:   cfg.DataDir,
		Delimiter: cfg.DelimiterRune(),
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return eng, nil
}
