package main

import (
	"github.com/spf13/cobra"

	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/permission"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long:  `Migrate the permissions and users tables and the casbin grant table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.migrate(); err != nil {
				return err
			}

			// O adapter do casbin cria casbin_rule ao ser inicializado
			if _, err := permission.NewGrantStore(a.db, a.logger); err != nil {
				return err
			}
			a.logger.Info("grant table ready")
			return nil
		},
	}
}
