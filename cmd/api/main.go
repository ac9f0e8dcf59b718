package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/rafabene/avantpro-backoffice/docs"
)

// @title AvantPro Back Office API
// @version 1.0
// @description Permission catalogue, grouped permission view and user access evaluation for the AvantPro dashboard.
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "avantpro",
		Short:         "AvantPro back office API",
		Long:          `AvantPro back office: permission catalogue, grouping and access evaluation for the admin dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newGroupsCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
