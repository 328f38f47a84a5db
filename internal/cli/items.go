package cli

import (
	"fmt"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/spf13/cobra"
)

// recordOutput is the printed form of a memory record.
type recordOutput struct {
	ItemID   string `json:"item_id"`
	Score    int    `json:"score"`
	LastSeen int64  `json:"last_seen"`
}

func newInitCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "init <item>...",
		Short: "Record first exposure of items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, "", func(app *application) error {
				engine := app.engineFor(g.learner)
				out := make([]recordOutput, 0, len(args))
				for _, id := range args {
					engine.InitializeItem(cmd.Context(), id)
					rec := engine.Record(cmd.Context(), id)
					out = append(out, recordOutput{ItemID: rec.ItemID, Score: rec.Score, LastSeen: rec.LastSeen})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newRateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <item> <badly|partly|well>",
		Short: "Rate how well an item was recalled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := domain.ParseRating(args[1])
			if err != nil {
				return err
			}
			if _, err := domain.NormalizeItemID(args[0]); err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}

			return g.withApp(cmd, "", func(app *application) error {
				engine := app.engineFor(g.learner)
				engine.RateItem(cmd.Context(), args[0], rating)
				rec := engine.Record(cmd.Context(), args[0])
				return writeJSON(cmd.OutOrStdout(), recordOutput{ItemID: rec.ItemID, Score: rec.Score, LastSeen: rec.LastSeen})
			})
		},
	}
}

func newRecordCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "record <item>...",
		Short: "Show the memory record of items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, "", func(app *application) error {
				engine := app.engineFor(g.learner)
				out := make([]recordOutput, 0, len(args))
				for _, id := range args {
					rec := engine.Record(cmd.Context(), id)
					out = append(out, recordOutput{ItemID: rec.ItemID, Score: rec.Score, LastSeen: rec.LastSeen})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}
