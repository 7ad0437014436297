package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cli"
	"github.com/forcekit/forcesql/internal/dialect"
	"github.com/forcekit/forcesql/internal/force"
	"github.com/forcekit/forcesql/internal/schema"
	"github.com/forcekit/forcesql/internal/sferr"
	"github.com/forcekit/forcesql/internal/sqlgen"
)

// renderCmd renders SQL from a saved describe JSON file, without touching
// the API. With --watch it re-renders whenever the input file changes.
func renderCmd() *cobra.Command {
	var input, output string
	var watch bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render SQL offline from a saved describe JSON file",
		Example: `  # Render a previously saved describe document
  forcesql render -i account.json -o account.sql

  # Re-render whenever the describe file changes
  forcesql render -i account.json -o account.sql --watch`,
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

			if err := renderFile(input, output, renderer); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			return watchAndRender(cmd, input, output, renderer)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Describe JSON file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render when the input file changes")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// renderFile reads a describe JSON document and writes the rendered SQL.
func renderFile(input, output string, renderer schema.Renderer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to read describe file").
			With("path", input)
	}

	desc, err := force.ParseDescribe(data)
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

	fmt.Printf("%s wrote %s\n", cli.Success("✓"), output)
	return nil
}

// watchAndRender re-renders on every change to the input file until the
// command context is cancelled. Watches the parent directory because many
// editors replace files on save.
func watchAndRender(cmd *cobra.Command, input, output string, renderer schema.Renderer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to start file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to watch directory").
			With("path", dir)
	}

	fmt.Printf("%s watching %s\n", cli.Info("→"), input)

	target := filepath.Clean(input)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := renderFile(input, output, renderer); err != nil {
				fmt.Fprint(os.Stderr, cli.FormatError(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "%s watch error: %v\n", cli.Warning("warning:"), err)
		}
	}
}
