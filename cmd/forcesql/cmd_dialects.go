package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/dialect"
)

func dialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dialect.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
