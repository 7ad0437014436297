package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cli"
	"github.com/forcekit/forcesql/internal/sferr"
)

// describeCmd fetches and saves the raw describe JSON for an object.
// The saved document is the input the render command consumes offline.
func describeCmd() *cobra.Command {
	var name, output string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Fetch and save raw object describe JSON",
		Example: `  # Save the Account describe document
  forcesql describe -n Account -o account.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := newForceClient(cfg)
			if err != nil {
				return err
			}
			if err := client.LoginWithCredentials(cmd.Context(), cfg.Username, cfg.Password); err != nil {
				return err
			}

			raw, err := client.DescribeRaw(cmd.Context(), name)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(raw))
				return nil
			}
			if err := os.WriteFile(output, raw, FilePerm); err != nil {
				return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to write describe file").
					With("path", output)
			}

			fmt.Printf("%s wrote %s\n", cli.Success("✓"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Salesforce SObject name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
