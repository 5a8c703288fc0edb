package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newImagesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Inspect uploaded images",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show the fields of one image record",
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

			img, err := client.GetImage(cmd.Context(), token, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, img)
			}
			keys := make([]string, 0, len(img.Fields))
			for k := range img.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%d\n", img.ID)
			fmt.Fprintf(w, "URL:\t%s\n", img.URL)
			for _, k := range keys {
				fmt.Fprintf(w, "%s:\t%s\n", k, img.Fields.Get(k))
			}
			return w.Flush()
		},
	})
	return cmd
}
