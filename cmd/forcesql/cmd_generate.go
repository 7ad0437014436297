package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cache"
	"github.com/forcekit/forcesql/internal/cli"
	"github.com/forcekit/forcesql/internal/dialect"
	"github.com/forcekit/forcesql/internal/force"
	"github.com/forcekit/forcesql/internal/sferr"
	"github.com/forcekit/forcesql/internal/sqlgen"
)

// FilePerm is the permission for generated files.
const FilePerm = 0644

// generateCmd fetches object metadata and writes the rendered SQL file.
func generateCmd() *cobra.Command {
	var name, output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch object metadata and render a CREATE TABLE statement",
		Example: `  # Generate SQL for the Account object
  forcesql generate -n Account -o account.sql

  # Print to stdout, bypassing the metadata cache
  forcesql generate -n Case --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			renderer := dialect.Get(cfg.Dialect)
			if renderer == nil {
				return sferr.Newf(sferr.ErrDialect, "unsupported dialect %q", cfg.Dialect).
					WithHelp("run `forcesql dialects` to list supported dialects")
			}

			raw, err := fetchDescribe(cmd.Context(), cfg, name, noCache)
			if err != nil {
				return err
			}

			desc, err := force.ParseDescribe(raw)
			if err != nil {
				return err
			}

			sql, err := sqlgen.Generate(desc, renderer)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(sql)
				return nil
			}
			if err := os.WriteFile(output, []byte(sql), FilePerm); err != nil {
				return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to write SQL file").
					With("path", output)
			}

			fmt.Printf("%s wrote %s (%d columns)\n", cli.Success("✓"), output, len(desc.Fields))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Salesforce SObject name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local metadata cache")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// fetchDescribe returns the raw describe JSON for an object, consulting the
// local cache first unless noCache is set. Cache entries are keyed by login
// endpoint so sandbox and production metadata never mix.
func fetchDescribe(ctx context.Context, cfg *Config, name string, noCache bool) ([]byte, error) {
	var store *cache.Cache
	if !noCache {
		var err error
		store, err = cache.Open(".")
		if err != nil {
			// A broken cache should not block generation.
			fmt.Fprintf(os.Stderr, "%s metadata cache unavailable: %v\n", cli.Warning("warning:"), err)
		} else {
			defer store.Close()

			data, ok, err := store.Get(cfg.LoginEndpoint, name, cfg.cacheTTL())
			if err != nil {
				return nil, err
			}
			if ok {
				return data, nil
			}
		}
	}

	client, err := newForceClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.LoginWithCredentials(ctx, cfg.Username, cfg.Password); err != nil {
		return nil, err
	}

	raw, err := client.DescribeRaw(ctx, name)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Set(cfg.LoginEndpoint, name, raw); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to cache describe: %v\n", cli.Warning("warning:"), err)
		}
	}

	return raw, nil
}
