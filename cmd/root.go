package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philiaspace/kotoba/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Japanese vocabulary size test",
	Long:  "Kotoba is a terminal app that estimates how many Japanese words you can read, using frequency-band sampling.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(bandsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
