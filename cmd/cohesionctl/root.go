package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cohesionctl",
		Short:         "Measure how tightly short texts cluster around a center text",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
