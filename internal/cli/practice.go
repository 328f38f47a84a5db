package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signdeck/internal/catalog"
	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/spf13/cobra"
)

// candidates resolves positional item IDs against cat. With no IDs the
// whole catalog is used.
func candidates(cat *catalog.Catalog, ids []string, log *slog.Logger) []domain.VocabularyItem {
	if len(ids) == 0 {
		return cat.Items()
	}
	items, missing := cat.Resolve(ids)
	if len(missing) > 0 && cat.Len() > 0 {
		log.Warn("items not in catalog", slog.Any("missing", missing))
	}
	return items
}

func newSelectCmd(g *globals) *cobra.Command {
	var (
		count       int
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "select [item]...",
		Short: "Pick items for a practice session",
		Long:  "Pick up to --count items, least-known and longest-unseen first. Without items the whole catalog is considered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, catalogPath, func(app *application) error {
				if !cmd.Flags().Changed("count") {
					count = app.config.Session.DefaultCount
				}
				pool := candidates(app.catalog, args, app.logger)
				selected := app.engineFor(g.learner).SelectSession(cmd.Context(), pool, count)
				return writeJSON(cmd.OutOrStdout(), selected)
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of items to pick (default: session.default_count)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (overrides config)")
	return cmd
}

func newQuizCmd(g *globals) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "quiz [item]...",
		Short: "Generate a quiz from the least-known items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, catalogPath, func(app *application) error {
				pool := candidates(app.catalog, args, app.logger)
				q, err := app.engineFor(g.learner).StartQuiz(cmd.Context(), pool)
				if errors.Is(err, domain.ErrNotEnoughItems) {
					return fmt.Errorf("%w: a quiz needs at least 7 items, got %d", err, len(pool))
				}
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), q)
			})
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (overrides config)")
	return cmd
}

func newCatalogCmd(_ *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <path>",
		Short: "Print the items of a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cat.Items())
		},
	}
}
