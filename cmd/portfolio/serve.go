package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Xav0929/portfolio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Seed the store and serve the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		cfg, err := portfolio.ConfigFromEnv()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(contentPath)
		if err != nil {
			return err
		}

		app := portfolio.New(cfg, cat)
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- app.Start(ctx) }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Println("shutting down")
		if err := app.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errc
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadDotEnv loads .env from the working directory if there is one.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
