package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"book-inventory/internal/config"
	authorRepo "book-inventory/internal/domains/author/repository"
	bookRepo "book-inventory/internal/domains/book/repository"
	infraCache "book-inventory/internal/infrastructure/cache"
	"book-inventory/internal/infrastructure/database"
	"book-inventory/internal/shared/catalogcache"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Run the embedded database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := database.MigrateUp
		if len(args) == 1 {
			command = args[0]
		}

		db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Migrate(cmd.Context(), command)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo catalogue into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		seeder := database.NewSeeder(db.Pool, authorRepo.NewPostgresRepository(db.Pool), bookRepo.NewPostgresRepository(db.Pool))
		if err := seeder.Run(ctx); err != nil {
			return err
		}

		// a running API may hold cached lists from before the seed
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		defer redisCache.Close()
		if err := redisCache.Connect(ctx); err == nil {
			catalogcache.NewInvalidator(redisCache).BookChanged(ctx, 0)
		}
		return nil
	},
}

func connect(ctx context.Context) (*database.PostgresDB, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
