package cli

import (
	"fmt"

	"github.com/phrazzld/signdeck/internal/config"
	"github.com/phrazzld/signdeck/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Manage the postgres schema",
		Long:      "Run schema migrations against the postgres backend. Other backends manage their own schema.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.Storage.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate requires the %s backend, configured backend is %s",
					config.BackendPostgres, g.cfg.Storage.Backend)
			}

			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			kv, err := postgres.Open(cmd.Context(), g.cfg.Storage.PostgresURL, g.logger)
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := postgres.Migrate(cmd.Context(), kv.DB(), command, g.logger); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", command)
			return err
		},
	}
}
