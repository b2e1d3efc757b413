package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/orgball2608/insta-dashboard/internal/migrations"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var migrationsDir = "internal/migrations"

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the dashboard database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		fmt.Println("Migration rollback successful")
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of every migration",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		return goose.StatusContext(ctx, db, migrationsDir)
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back all migrations",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.ResetContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		fmt.Println("All migrations have been rolled back")
		return nil
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		return goose.VersionContext(ctx, db, migrationsDir)
	}),
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new Go migration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Creating migration in: %s\n", migrationsDir)
		return goose.Create(nil, migrationsDir, args[0], "go")
	},
}

// withDB opens the database from POSTGRES_* variables for the duration of fn.
func withDB(fn func(ctx context.Context, db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		pg, err := config.NewPostgres()
		if err != nil {
			return err
		}

		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("failed to set dialect: %w", err)
		}

		db, err := sql.Open("postgres", pg.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		return fn(cmd.Context(), db)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", migrationsDir, "Directory holding the migration files")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd, resetCmd, versionCmd, createCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
