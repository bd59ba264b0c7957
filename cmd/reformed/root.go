package main

import (
	"github.com/ah-its-andy/reformed/internal/config"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "reformed",
		Short:         "Document conversion over HTTP, backed by pandoc",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	load := func() (*config.Config, error) { return config.Load(configFlag) }

	rootCmd.AddCommand(newServeCommand(load, &configFlag))
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newHistoryCommand(load))

	return rootCmd
}
