package main

import (
	"github.com/minderapp/minder/internal/logger"
	"github.com/minderapp/minder/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Minder web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	logger.Info("Minder server starting", logger.F("port", cfg.Port))
	return srv.Start(":" + cfg.Port)
}
