package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philiaspace/kotoba/internal/app"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Start a vocabulary test",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run()
	},
}
