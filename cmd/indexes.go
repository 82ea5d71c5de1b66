/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/its-platform/apiserver/config"
	"github.com/its-platform/apiserver/internal/db"
	"github.com/spf13/cobra"
)

// indexesCmd represents the indexes command.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the document-store indexes",
	Long: `Creates the indexes the repositories rely on, including the
unique index on users.email. Creation is idempotent; the server also
runs this at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		database, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer func() {
			_ = db.Close(context.Background(), database)
		}()

		if err := db.EnsureIndexes(ctx, database); err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
