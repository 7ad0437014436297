// Package main provides the CLI for the forcesql tool.
// Forcesql logs into the Salesforce REST API, fetches object metadata, and
// renders CREATE TABLE statements for a target SQL dialect.
//
// Usage:
//
//	forcesql generate -n Account -o account.sql   # Describe + render + write
//	forcesql describe -n Account -o account.json  # Save raw describe JSON
//	forcesql render -i account.json -o account.sql # Render offline
//	forcesql apply -i account.sql                  # Execute against Postgres
//	forcesql dialects                              # List render targets
//	forcesql cache clear                           # Drop the metadata cache
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cli"

	// Database driver for the apply command
	_ "github.com/lib/pq"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	configFile  string
	dialectName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "forcesql",
		Short:         "Build SQL schemas from Salesforce objects",
		Long:          `Forcesql fetches Salesforce object metadata and renders it as CREATE TABLE statements for a target SQL dialect.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "forcesql.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "Target SQL dialect (default: postgres)")

	rootCmd.AddCommand(
		generateCmd(),
		describeCmd(),
		renderCmd(),
		applyCmd(),
		dialectsCmd(),
		cacheCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
