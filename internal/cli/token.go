package cli

import (
	"errors"
	"fmt"

	"github.com/phrazzld/signdeck/internal/service/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "token <learner>",
		Short: "Issue an API token for a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is not configured")
			}
			svc, err := auth.NewJWTService(g.cfg.Auth)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}
