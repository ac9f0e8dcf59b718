package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/seed"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load permissions and users from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.migrate(); err != nil {
				return err
			}
			if err := a.wire(); err != nil {
				return err
			}

			result, err := seed.Apply(context.Background(), file, a.permissionService, a.userService, a.logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "permissions: %d created, %d skipped\nusers: %d created, %d skipped\n",
				result.PermissionsCreated, result.PermissionsSkipped,
				result.UsersCreated, result.UsersSkipped,
			)
			return nil
		},
	}
}
