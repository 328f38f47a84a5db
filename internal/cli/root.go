// Package cli implements the signdeck command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/signdeck/internal/config"
	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags and the state resolved from them
// before any subcommand runs.
type globals struct {
	configPath string
	logLevel   string
	learner    string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the signdeck command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "signdeck",
		Short:         "Memory scoring and practice selection for sign vocabulary",
		Long:          "signdeck tracks how well a learner remembers each sign and picks what to practice next.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "Config file (default: ./signdeck.yaml if present)")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	flags.StringVarP(&g.learner, "learner", "l", "", "Learner whose scores to use (default: shared scores)")

	root.AddCommand(
		newServeCmd(g),
		newMigrateCmd(g),
		newInitCmd(g),
		newRateCmd(g),
		newRecordCmd(g),
		newSelectCmd(g),
		newQuizCmd(g),
		newCatalogCmd(g),
		newTokenCmd(g),
	)
	return root
}

// load reads configuration and builds the logger. Logs go to stderr so
// command output on stdout stays machine-readable.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if g.logLevel != "" {
		level := strings.ToLower(g.logLevel)
		if _, ok := logger.ParseLevel(level); !ok {
			return fmt.Errorf("invalid log level %q", g.logLevel)
		}
		cfg.Server.LogLevel = level
	}

	g.cfg = cfg
	g.logger = logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)
	return nil
}

// withApp opens the application for the duration of fn.
func (g *globals) withApp(cmd *cobra.Command, catalogPath string, fn func(app *application) error) error {
	app, err := newApplication(cmd.Context(), g.cfg, g.logger, catalogPath)
	if err != nil {
		return err
	}
	defer app.close()
	return fn(app)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
