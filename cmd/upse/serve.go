package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/upsehat/upse/pkg/server"
	"github.com/upsehat/upse/pkg/version"
)

func NewServeCommand() *cobra.Command {
	listen := ""

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve UPS telemetry over HTTP",
		Long: `Run a small JSON API exposing all UPS telemetry, plus the power-off
command on POST /power-off. Bus access is serialized internally.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			device, err := openUps(cfg)
			if err != nil {
				return err
			}
			defer device.Close()

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("upse serve starting")

			return server.New(device).Run(cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")

	return cmd
}
