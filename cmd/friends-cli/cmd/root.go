package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/friends/internal/apiclient"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	apiURL  string
	token   string
	timeout time.Duration
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "friends-cli",
		Short: "Friends API command-line client",
		Long: `friends-cli talks to the friends REST API from the terminal.

Obtain a token with "friends-cli login", then pass it with --token or the
FRIENDS_TOKEN environment variable to the other commands.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", os.Getenv("API_BASE_URL"), "API base URL (env API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FRIENDS_TOKEN"), "bearer access token (env FRIENDS_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout, 0 for none")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON instead of a table")

	root.AddCommand(
		newLoginCmd(opts),
		newUsersCmd(opts),
		newImagesCmd(opts),
		newVersionCmd(),
		newListServicesCmd(),
	)
	return root
}

// Execute executes the root command
func Execute() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) client() (*apiclient.Client, error) {
	if o.apiURL == "" {
		return nil, errors.New("API base URL is required: use --api or API_BASE_URL")
	}
	return apiclient.New(o.apiURL, apiclient.WithTimeout(o.timeout))
}

func (o *options) requireToken() (string, error) {
	if o.token == "" {
		return "", errors.New("no token: run \"friends-cli login\" and pass --token or FRIENDS_TOKEN")
	}
	return o.token, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
