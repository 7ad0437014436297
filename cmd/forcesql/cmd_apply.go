package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cli"
	"github.com/forcekit/forcesql/internal/dialect"
	"github.com/forcekit/forcesql/internal/force"
	"github.com/forcekit/forcesql/internal/sferr"
	"github.com/forcekit/forcesql/internal/sqlgen"
)

// applyCmd executes generated DDL against the configured database.
func applyCmd() *cobra.Command {
	var objectName, input string
	var noCache, dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Execute generated DDL against the configured database",
		Example: `  # Generate DDL for an object and execute it
  forcesql apply -n Account

  # Execute a previously rendered SQL file
  forcesql apply -i account.sql

  # Print the statements without executing them
  forcesql apply -n Account --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var ddl string
			switch {
			case input != "":
				data, err := os.ReadFile(input)
				if err != nil {
					return sferr.Wrap(sferr.ErrSQLExecution, err, "failed to read SQL file").
						With("path", input)
				}
				ddl = string(data)
			case objectName != "":
				renderer := dialect.Get(cfg.Dialect)
				if renderer == nil {
					return sferr.Newf(sferr.ErrDialect, "unsupported dialect %q", cfg.Dialect).
						WithHelp("run `forcesql dialects` to list supported dialects")
				}
				raw, err := fetchDescribe(cmd.Context(), cfg, objectName, noCache)
				if err != nil {
					return err
				}
				desc, err := force.ParseDescribe(raw)
				if err != nil {
					return err
				}
				ddl, err = sqlgen.Generate(desc, renderer)
				if err != nil {
					return err
				}
			default:
				return sferr.New(sferr.ErrSQLExecution, "nothing to apply").
					WithHelp("pass an object with --name or a SQL file with --input")
			}

			if dryRun {
				fmt.Println(ddl)
				return nil
			}

			if cfg.DatabaseURL == "" {
				return sferr.New(sferr.ErrSQLConnect, "no database URL configured").
					WithHelp("set database_url in forcesql.yaml or the SF_DATABASE_URL environment variable")
			}

			db, err := sql.Open("postgres", cfg.DatabaseURL)
			if err != nil {
				return sferr.Wrap(sferr.ErrSQLConnect, err, "failed to open database connection")
			}
			defer db.Close()

			if err := db.PingContext(cmd.Context()); err != nil {
				return sferr.Wrap(sferr.ErrSQLConnect, err, "failed to reach database")
			}
			if _, err := db.ExecContext(cmd.Context(), ddl); err != nil {
				return sferr.Wrap(sferr.ErrSQLExecution, err, "failed to execute DDL")
			}

			fmt.Printf("%s applied DDL\n", cli.Success("✓"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&objectName, "name", "n", "", "Salesforce object API name")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Rendered SQL file to execute")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the describe cache")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print statements instead of executing them")

	return cmd
}
