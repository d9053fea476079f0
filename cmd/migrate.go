package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"logidash/db/pg"
	_ "logidash/migration" // registers the Go migrations

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/pressly/goose/v3"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "migrate the entity database",
		Long:  `This command migrates the PostgreSQL entity database with goose.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			up, _ := cmd.Flags().GetBool("up")
			down, _ := cmd.Flags().GetBool("down")

			if cmd.Flags().Changed("down") && !cmd.Flags().Changed("up") {
				up = false
			}
			if up && down {
				return cmd.Help()
			}

			connStr := pg.CreateDSN()
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("failed to set goose dialect: %w", err)
			}

			db, err := sql.Open("postgres", connStr)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			pingCtx, pingCancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer pingCancel()
			if err := db.PingContext(pingCtx); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}
			log.Println("Successfully connected to the database.")

			migrationsDir := "migration"
			if up {
				log.Println("Running 'up' migrations...")
				if err := goose.UpContext(cmd.Context(), db, migrationsDir); err != nil {
					return fmt.Errorf("goose up failed: %w", err)
				}
			} else if down {
				log.Println("Rolling back the last migration...")
				if err := goose.DownContext(cmd.Context(), db, migrationsDir); err != nil {
					return fmt.Errorf("goose down failed: %w", err)
				}
			}
			log.Println("Checking migration status...")
			return goose.StatusContext(cmd.Context(), db, migrationsDir)
		},
	}

	cmd.Flags().BoolP("up", "u", true, "up the version of db")
	cmd.Flags().BoolP("down", "d", false, "down the version of db")

	return cmd
}
