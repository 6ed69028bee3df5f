package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/repository"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <table> [filter]",
		Short: "Print the relation a listing reads",
		Long:  "Prints the view or table serving a listing. The filter is actives, archived or all and defaults to actives.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := models.ParseBaseTable(args[0])
			if err != nil {
				return err
			}
			rawFilter := ""
			if len(args) == 2 {
				rawFilter = args[1]
			}
			filter, err := models.ParseFilterMode(rawFilter)
			if err != nil {
				return err
			}
			name, err := repository.TableNameByFilter(table, filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
