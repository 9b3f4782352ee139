package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Acquire (or validate the stored) bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := current.session.Token(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "instance_url: %s\n", token.InstanceURL)
		fmt.Fprintf(out, "token_type:   %s\n", token.TokenType)
		fmt.Fprintf(out, "scope:        %s\n", token.Scope)
		fmt.Fprintf(out, "id:           %s\n", token.ID)
		return nil
	},
}
