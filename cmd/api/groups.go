package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/valueobjects"
)

func newGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Print the grouped permission view with CRUD coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.wire(); err != nil {
				return err
			}

			groups, err := a.permissionService.GroupedPermissions(context.Background())
			if err != nil {
				return err
			}

			return printGroups(cmd.OutOrStdout(), groups)
		},
	}
}

func printGroups(w io.Writer, groups []entities.PermissionGroup) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tNAME\tCREATE\tREAD\tUPDATE\tDELETE\tCOVERAGE\tRECORDS")

	for _, g := range groups {
		cells := make([]string, 0, len(valueobjects.CanonicalActions))
		for _, action := range valueobjects.CanonicalActions {
			if p, ok := g.PermissionFor(action); ok {
				cells = append(cells, p.Name)
			} else {
				cells = append(cells, "-")
			}
		}

		stats := g.Statistics()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d (%d%%)\t%d\n",
			g.Entity, g.DisplayName, strings.Join(cells, "\t"),
			stats.Active, stats.Total, stats.Percentage, len(g.OriginalPermissions),
		)
	}

	return tw.Flush()
}
