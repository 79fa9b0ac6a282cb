package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"book-inventory/internal/config"
	"book-inventory/pkg/logger"
)

// cfg is loaded once by the root command before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Book inventory API",
	Long:          `Inventory serves the book catalogue API and manages its database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logger.Init(cfg.App.Environment, cfg.App.LogLevel)
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		return nil
	},
}

func main() {
	// .env is optional; production uses the real environment
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
