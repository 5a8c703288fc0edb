package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newUsersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse users",
	}
	cmd.AddCommand(newUsersListCmd(opts), newUsersGetCmd(opts))
	return cmd
}

func newUsersListCmd(opts *options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.requireToken()
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			users, err := client.ListUsers(cmd.Context(), token, search)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, users)
			}
			if len(users) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tNAME")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.FullName())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	return cmd
}

func newUsersGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := opts.requireToken()
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			u, err := client.GetUser(cmd.Context(), token, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, u)
			}
			email := "(not specified)"
			if u.Email != nil && *u.Email != "" {
				email = *u.Email
			}
			avatar := "-"
			if u.Avatar != nil && u.Avatar.Image != "" {
				avatar = u.Avatar.Image
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%d\n", u.ID)
			fmt.Fprintf(w, "Username:\t%s\n", u.Username)
			fmt.Fprintf(w, "Name:\t%s\n", u.FullName())
			fmt.Fprintf(w, "Email:\t%s\n", email)
			fmt.Fprintf(w, "Avatar:\t%s\n", avatar)
			return w.Flush()
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}
