package main

import (
	"fmt"
	"os"

	"github.com/minderapp/minder/internal/config"
	"github.com/minderapp/minder/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagPort    string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "minder",
	Short: "Minder - locally-hosted reminder web app",
	Long: `Minder is a locally-hosted reminder web application. Users register,
log in and create time-stamped reminders, then view them filtered by how
close their deadlines are.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "HTTP listen port")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the store files")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addUserCmd)
}

// loadConfig loads the config file and applies CLI flag overrides, then
// initializes the global logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if rootCmd.PersistentFlags().Changed("port") {
		cfg.Port = flagPort
	}
	if rootCmd.PersistentFlags().Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.FilePath = cfg.LogFile
	logCfg.Console = cfg.LogConsole
	if err := logger.Init(logCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Close()
}
