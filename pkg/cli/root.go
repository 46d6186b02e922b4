package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/cli/internal/output"
	"github.com/themesmith/themesmith/pkg/cliconfig"
	"github.com/themesmith/themesmith/pkg/logging"
	"github.com/themesmith/themesmith/pkg/tokens"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput   bool
	logLevel     string
	logFormat    string
	logFile      string
	overlayFlags []string
	tokensFile   string
	jsonPath     string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// Effective state built by the root command before any subcommand runs.
var (
	cfg     = cliconfig.NewDefault()
	log     = logging.Nop()
	logSink io.Closer

	components *catalog.Catalog
	themes     *tokens.Catalog
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "themesmith",
	Short: "themesmith serves component theming metadata to AI agents",
	Long: `themesmith answers questions about component theming: design tokens,
platform selectors, compound-component scopes and the tokens a compound
derives for its children. It serves them over the Model Context Protocol
and from the command line, and generates component theme Sass.

Configuration can be provided via flags, THEMESMITH_* environment variables,
.themesmithrc.yaml in the working directory, or ~/.config/themesmith/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if cerr := teardown(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&jsonPath, "jsonpath", "", "Print only the values a JSONPath selects from the JSON output (implies --json)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	pf.StringArrayVar(&overlayFlags, "catalog", nil, "Component catalog overlay file (repeatable)")
	pf.StringVar(&tokensFile, "tokens", "", "Token catalog JSON file replacing the built-in one")
}

// setup loads the layered configuration, applies flag overrides and builds
// the logger.
func setup(cmd *cobra.Command) error {
	loaded, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}
	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, sink, err := newLogger(loaded, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg = loaded
	jsonOutput = loaded.JSON || jsonPath != ""
	log = logger
	logSink = sink
	components, themes = nil, nil

	for key, source := range loaded.Sources {
		if source != cliconfig.SourceDefault {
			log.Debug("config value", "key", key, "source", source)
		}
	}
	return nil
}

// writeJSON writes v as indented JSON, or only the --jsonpath selection.
func writeJSON(cmd *cobra.Command, v interface{}) error {
	if jsonPath != "" {
		return output.JSONPath(cmd.OutOrStdout(), v, jsonPath)
	}
	return output.JSON(cmd.OutOrStdout(), v)
}

func teardown() error {
	if logSink == nil {
		return nil
	}
	err := logSink.Close()
	logSink = nil
	log = logging.Nop()
	return err
}

// applyFlags overrides configuration with flags the user actually set.
func applyFlags(cmd *cobra.Command, c *cliconfig.CLIConfig) {
	flags := cmd.Flags()
	if flags.Changed("json") {
		c.JSON = jsonOutput
		c.Sources["json"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
		c.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
		c.Sources["logFormat"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
		c.Sources["logFile"] = cliconfig.SourceFlag
	}
	if len(overlayFlags) > 0 {
		c.CatalogOverlays = append(c.CatalogOverlays, overlayFlags...)
		c.Sources["catalogOverlays"] = cliconfig.SourceFlag
	}
}

func newLogger(c *cliconfig.CLIConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	lcfg := logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: logging.ParseFormat(c.LogFormat),
		Output: stderr,
	}
	if c.LogFile == "" {
		return logging.New(lcfg), nil, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logging.NewTee(lcfg, f), f, nil
}

// loadCatalogs builds the component catalog from the embedded document plus
// configured overlays, and the token catalog from --tokens or the embedded
// data. Results are kept for the rest of the command.
func loadCatalogs() (*catalog.Catalog, *tokens.Catalog, error) {
	if components != nil && themes != nil {
		return components, themes, nil
	}

	c, err := loadComponentCatalog(cfg.CatalogOverlays)
	if err != nil {
		return nil, nil, err
	}

	t, err := loadTokenCatalog()
	if err != nil {
		return nil, nil, err
	}

	log.Debug("catalogs loaded",
		"components", c.Len(),
		"compounds", len(c.Compounds()),
		"themes", t.Len(),
		"overlays", len(cfg.CatalogOverlays))

	components, themes = c, t
	return c, t, nil
}

func loadComponentCatalog(overlays []string) (*catalog.Catalog, error) {
	if len(overlays) == 0 {
		return catalog.Default(), nil
	}
	docs := make([][]byte, 0, len(overlays))
	for _, path := range overlays {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog overlay: %w", err)
		}
		docs = append(docs, data)
	}
	c, err := catalog.Load(catalog.DefaultData(), docs...)
	if err != nil {
		return nil, fmt.Errorf("loading overlays %s: %w", strings.Join(overlays, ", "), err)
	}
	return c, nil
}

func loadTokenCatalog() (*tokens.Catalog, error) {
	if tokensFile == "" {
		return tokens.Default(), nil
	}
	data, err := os.ReadFile(tokensFile)
	if err != nil {
		return nil, fmt.Errorf("reading token catalog: %w", err)
	}
	t, err := tokens.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tokensFile, err)
	}
	return t, nil
}
