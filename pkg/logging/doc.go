// Package logging configures the log/slog loggers used by the CLI and the
// MCP server.
//
// Loggers always write to stderr (never stdout, which belongs to the stdio
// transport) and can additionally tee JSON records into a log file:
//
//	log := logging.New(logging.Config{Level: logging.LevelDebug})
//	log.Info("catalogs loaded", "components", n)
//
// Components that log take a *slog.Logger through SetLogger and default to
// Nop until one is provided.
package logging
