package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/config"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := setupDatabase(cfg)
		if err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}

		if err := repository.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("Schema migrated successfully")
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the opportunity index from the record stores",
	Long:  `Index every stored opportunity that has no index entry and drop entries whose record is gone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		cfg := config.Load()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.URL())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		stats, err := repository.NewIndexRebuilder(pool).Rebuild(ctx, dryRun)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Println("Dry run, no changes written")
		}
		for _, t := range model.SearchOrder {
			s := stats[t]
			fmt.Printf("%-28s added %d, removed %d\n", t, s.Added, s.Removed)
		}
		return nil
	},
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
