package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forcekit/forcesql/internal/cache"
	"github.com/forcekit/forcesql/internal/cli"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local describe cache",
	}
	cmd.AddCommand(cacheListCmd(), cacheClearCmd())
	return cmd
}

func cacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached object describes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			c, err := cache.Open(".")
			if err != nil {
				return err
			}
			defer c.Close()

			objects, err := c.Objects(cfg.LoginEndpoint)
			if err != nil {
				return err
			}
			if len(objects) == 0 {
				fmt.Println("cache is empty")
				return nil
			}
			for _, name := range objects {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func cacheClearCmd() *cobra.Command {
	var objectName string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached describes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cache.Open(".")
			if err != nil {
				return err
			}
			defer c.Close()

			if objectName != "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := c.Delete(cfg.LoginEndpoint, objectName); err != nil {
					return err
				}
				fmt.Printf("%s removed %s from cache\n", cli.Success("✓"), objectName)
				return nil
			}

			if err := c.Clear(); err != nil {
				return err
			}
			fmt.Printf("%s cache cleared\n", cli.Success("✓"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&objectName, "name", "n", "", "Clear a single object instead of everything")

	return cmd
}
