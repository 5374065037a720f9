// Package rpglog wraps zap for the graph builder, CLI and MCP server. The
// level is driven by an explicit verbose flag plus the RPG_LOG environment
// variable, following the CLI's own PersistentPreRunE logger construction.
package rpglog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured *zap.Logger. verbose forces debug
// level; otherwise RPG_LOG=debug|info|warn|error overrides the default
// info level.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	} else if env := strings.ToLower(strings.TrimSpace(os.Getenv("RPG_LOG"))); env != "" {
		if parsed, err := zapcore.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// Nop returns a no-op logger, used as the CLI's logger until New builds the
// configured one, and in tests that don't care about log output.
func Nop() *zap.Logger { return zap.NewNop() }
