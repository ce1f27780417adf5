package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/config"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/pkg/logger"
)

var version = "dev"

var (
	apiFlag   string
	credsFlag string
	jsonFlag  bool
)

// cli is built once per run in PersistentPreRunE.
var cli struct {
	log   zerolog.Logger
	store *session.FileStore
	api   *apiclient.Client
	out   io.Writer
}

var rootCmd = &cobra.Command{
	Use:   "helpdeskctl",
	Short: "Help desk command line client",
	Long: `helpdeskctl talks to the help desk API directly.

Log in once with "helpdeskctl login"; the token is kept in your user
config directory until you log out or the API rejects it.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "API base URL (defaults to UPSTREAM_API_URL + /api)")
	rootCmd.PersistentFlags().StringVar(&credsFlag, "credentials", "", "credentials file (defaults to the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, ticketsCmd, portalCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cli.log = logger.NewWithWriter(cfg.Env, os.Stderr)
	cli.out = cmd.OutOrStdout()

	path := credsFlag
	if path == "" {
		if path, err = session.DefaultFilePath(); err != nil {
			return fmt.Errorf("locate credentials: %w", err)
		}
	}
	cli.store = session.NewFileStore(path)

	base := apiFlag
	if base == "" {
		base = cfg.APIBase()
	}
	cli.api = apiclient.New(apiclient.Config{
		BaseURL: base,
		Timeout: cfg.UpstreamTimeout,
		Tokens:  cli.store,
		OnUnauthorized: func(context.Context) {
			if err := cli.store.Clear(); err != nil {
				cli.log.Warn().Err(err).Msg("clear credentials")
			}
		},
		Log: cli.log,
	})
	return nil
}

// explain turns API errors into something a terminal user can act on.
func explain(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return errors.New(`session expired, run "helpdeskctl login" again`)
	}
	return errors.New(apiclient.Message(err, fallback))
}

func requireLogin() error {
	c, err := cli.store.Load()
	if err != nil {
		return err
	}
	if c == nil || c.Token == "" {
		return errors.New(`not logged in, run "helpdeskctl login" first`)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
