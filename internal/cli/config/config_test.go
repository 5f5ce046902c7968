package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "csvql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoadConfig_Defaults tests the values used when nothing is configured.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(wd, "."), cfg.DataDir)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, OutputTable, cfg.Output)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.QueryTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

// TestLoadConfig_File tests that a config file overrides defaults and anchors
// relative paths.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `data_dir: data
delimiter: ";"
output: json
log_level: debug
server:
  addr: ":9000"
  query_timeout: 5s
  max_body_bytes: 2048
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.QueryTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

// TestLoadConfig_FoundUpward tests discovery of a config file in a parent directory.
func TestLoadConfig_FoundUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "output: csv\n")
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0750))
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, OutputCSV, cfg.Output)
	assert.Equal(t, "csvql.yaml", filepath.Base(GetConfigFileUsed()))
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "output: json\nserver:\n  addr: from_file\n")

	t.Setenv("CSVQL_OUTPUT", "yaml")
	t.Setenv("CSVQL_SERVER__ADDR", "from_env")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, OutputYAML, cfg.Output, "env var should override config file")
	assert.Equal(t, "from_env", cfg.Server.Addr, "nested env var should override config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "output: json\n")
	t.Setenv("CSVQL_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "table", "output format")
	flags.Duration("query-timeout", 0, "query timeout")
	flags.String("input", "", "not a config key")
	require.NoError(t, flags.Set("format", "md"))
	require.NoError(t, flags.Set("query-timeout", "2s"))
	require.NoError(t, flags.Set("input", "q.csvql"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, OutputMarkdown, cfg.Output, "flag value should override config file and env var")
	assert.Equal(t, 2*time.Second, cfg.Server.QueryTimeout)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "output: json\n")
	t.Setenv("CSVQL_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "table", "output format")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, OutputYAML, cfg.Output, "env var should be used when flag is not set")
}

// TestLoadConfig_DataDirFlagRelativeToCwd tests that --data-dir is not
// re-anchored at the project root.
func TestLoadConfig_DataDirFlagRelativeToCwd(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "data_dir: from_file\n")
	cwd := t.TempDir()
	t.Chdir(cwd)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "data directory")
	require.NoError(t, flags.Set("data-dir", "csv"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "csv"), cfg.DataDir)
}

// TestLoadConfig_Invalid tests rejection of bad values.
func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown output", "output: xml\n", "unknown output format"},
		{"long delimiter", "delimiter: ab\n", "single character"},
		{"quote delimiter", "delimiter: '\"'\n", "not allowed"},
		{"unknown log level", "log_level: loud\n", "unable to decode config"},
		{"odd log level", "log_level: INFO+2\n", "unknown log level"},
		{"bad duration", "server:\n  query_timeout: soon\n", "unable to decode config"},
		{"broken yaml", "output: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_EffectiveLogLevel(t *testing.T) {
	cfg := &Config{LogLevel: slog.LevelWarn}
	assert.Equal(t, slog.LevelWarn, cfg.EffectiveLogLevel())
	cfg.Verbose = true
	assert.Equal(t, slog.LevelDebug, cfg.EffectiveLogLevel())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "data_dir", envKey("CSVQL_DATA_DIR"))
	assert.Equal(t, "server.read_header_timeout", envKey("CSVQL_SERVER__READ_HEADER_TIMEOUT"))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.Equal(t, logger, ctx.Value(LoggerKey()))
}
