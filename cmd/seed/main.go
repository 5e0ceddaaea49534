package main

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"productivity/internal/database"
	"productivity/internal/logger"
	"productivity/internal/repository"
)

var (
	databaseURL string
	randomize   bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample tip catalog into a SQL database",
	Long: `Migrates the schema and loads the built-in catalog of categories and tips.

Tips are only imported into an empty database, so running it twice is safe.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger.Init(os.Stderr, level, "text")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := repository.Seed(cmd.Context(), store, repository.SeedOptions{Randomize: randomize})
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "database already holds tips, nothing imported")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d tips into %d categories\n", n, len(repository.SampleCategories))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema without loading data",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their tip counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		list, err := store.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, c := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", c.Count, c.Name)
		}
		return nil
	},
}

func openStore(ctx context.Context) (*repository.GormStore, func(), error) {
	dsn := strings.TrimSpace(databaseURL)
	if dsn == "" {
		return nil, nil, fmt.Errorf("database url is required (--database-url or DATABASE_URL)")
	}
	if strings.Contains(dsn, "mode=memory") {
		log.Warn("in-memory database: seeded data disappears when this command exits")
	}

	db, err := database.Connect(dsn, database.Options{Silent: !verbose})
	if err != nil {
		return nil, nil, fmt.Errorf("db connect failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	store := repository.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate failed: %w", err)
	}
	return store, func() { _ = sqlDB.Close() }, nil
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "SQLite DSN or postgres:// URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log SQL statements")
	rootCmd.Flags().BoolVar(&randomize, "random", true, "randomize views, favorites and ratings")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
