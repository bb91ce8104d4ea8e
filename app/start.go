package app

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/daemon"
	"github.com/GoMembership/GoMembership/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	rootCmd.AddCommand(startCmd)
}

var (
	cfg config.Config

	devMode      bool
	browseStatic bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the GoMembership web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath()); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return errors.Wrap(logger.Init(cfg.Log), "failed to init logger")
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				log.Error().Err(err).Msg("failed to start")
				return err
			}

			log.Info().
				Str("version", Version).
				Str("organization", cfg.Organization).
				Int("port", cfg.Webserver.Port).
				Msg("starting GoMembership")

			return d.Start()
		},
	}
)
