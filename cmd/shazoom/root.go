package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shazoom/config"
	"shazoom/logging"
)

var (
	envFile     string
	catalogPath string
)

var rootCmd = &cobra.Command{
	Use:   "shazoom",
	Short: "An audio fingerprinting engine: build a catalog, then recognize recordings against it",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to a dotenv file to load (missing file is not an error)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "catalog.json", "path to the built catalog file")

	cobra.OnInitialize(func() {
		config.LoadEnv(envFile)
		logging.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(listenCmd)
}
