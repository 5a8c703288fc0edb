package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an access/refresh token pair",
		Long: `Exchanges a username and password for tokens. The password is read from
--password or the FRIENDS_PASSWORD environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("FRIENDS_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			pair, err := client.ObtainToken(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, pair)
			}
			fmt.Fprintf(out, "export FRIENDS_TOKEN=%s\n", pair.Access)
			fmt.Fprintf(out, "# refresh token: %s\n", pair.Refresh)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (env FRIENDS_PASSWORD)")
	return cmd
}
