package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/cliconfig"
	"github.com/themesmith/themesmith/pkg/mcp"
)

var (
	servePort        int
	servePath        string
	serveAllowRemote bool
)

// mcpCmd is the Cobra command for "themesmith mcp".
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server in stdio mode for AI assistants",
	Long: `Start the Model Context Protocol (MCP) server in stdio mode.

This is used by AI assistants (Claude Desktop, Cursor, etc.) to query
component theming metadata through the MCP protocol over stdin/stdout.
Logs go to stderr; use --log-file to keep a copy.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := newMCPServer()
		if err != nil {
			return err
		}
		stdio := mcp.NewStdioServer(server)
		stdio.SetLogger(log)
		stdio.SetIO(cmd.InOrStdin(), cmd.OutOrStdout())
		return stdio.Run()
	},
}

// serveCmd runs the Streamable HTTP transport in the foreground.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over HTTP (foreground)",
	Long: `Start the MCP server with the Streamable HTTP transport.

By default the server listens on port 9091 at /mcp and only accepts
connections from localhost. Stop it with Ctrl+C.`,
	Example: `  # Start with defaults
  themesmith serve

  # Custom port, reachable from other hosts
  themesmith serve --port 8080 --allow-remote`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Port = servePort
			cfg.Sources["port"] = cliconfig.SourceFlag
		}
		if flags.Changed("path") {
			cfg.Path = servePath
			cfg.Sources["path"] = cliconfig.SourceFlag
		}
		if flags.Changed("allow-remote") {
			cfg.AllowRemote = serveAllowRemote
			cfg.Sources["allowRemote"] = cliconfig.SourceFlag
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		server, err := newMCPServer()
		if err != nil {
			return err
		}
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s%s\n", server.Addr(), cfg.Path)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		log.Info("shutting down")
		return server.Stop()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", cliconfig.DefaultPort, "HTTP port")
	serveCmd.Flags().StringVar(&servePath, "path", cliconfig.DefaultPath, "MCP endpoint path")
	serveCmd.Flags().BoolVar(&serveAllowRemote, "allow-remote", false, "Accept connections from non-localhost addresses")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
}

func newMCPServer() (*mcp.Server, error) {
	c, t, err := loadCatalogs()
	if err != nil {
		return nil, err
	}
	server := mcp.NewServer(mcpConfig(cfg), c, t)
	server.SetLogger(log)
	return server, nil
}

// mcpConfig converts the CLI configuration, which counts time in seconds,
// into an MCP server configuration.
func mcpConfig(c *cliconfig.CLIConfig) *mcp.Config {
	out := mcp.DefaultConfig()
	out.Port = c.Port
	out.Path = c.Path
	out.AllowRemote = c.AllowRemote
	if len(c.AllowedOrigins) > 0 {
		out.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	}
	out.SessionTimeout = time.Duration(c.SessionTimeout) * time.Second
	out.MaxSessions = c.MaxSessions
	out.GuidanceCacheTTL = time.Duration(c.GuidanceCacheTTL) * time.Second
	return out
}
