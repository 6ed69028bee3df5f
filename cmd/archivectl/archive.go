package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/bizops-api/internal/service"
)

type archiveFlags struct {
	reason string
	by     string
}

func newArchiveCmd(a *app) *cobra.Command {
	var flags archiveFlags

	cmd := &cobra.Command{
		Use:   "archive <kind> <id>",
		Short: "Archive a submission, order or proof",
		Long:  "Calls the archive procedure of the entity kind. Omitted --reason and --by are stored as null.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archiveCmd := service.ArchiveCommand{Kind: args[0], ID: args[1]}
			if cmd.Flags().Changed("reason") {
				archiveCmd.Reason = &flags.reason
			}
			if cmd.Flags().Changed("by") {
				archiveCmd.By = &flags.by
			}
			return a.withArchiver(cmd.Context(), func(svc archiver) error {
				result, err := svc.Archive(cmd.Context(), operatorActor(), archiveCmd)
				if err != nil {
					return fmt.Errorf("archiving %s %s: %w", args[0], args[1], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %s %s\n", result.Kind, result.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.reason, "reason", "r", "", "Why the entity is archived")
	cmd.Flags().StringVar(&flags.by, "by", "", "Actor recorded as archived_by")

	return cmd
}

func newUnarchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <kind> <id>",
		Short: "Restore an archived submission, order or proof",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchiver(cmd.Context(), func(svc archiver) error {
				result, err := svc.Unarchive(cmd.Context(), operatorActor(), service.ArchiveCommand{Kind: args[0], ID: args[1]})
				if err != nil {
					return fmt.Errorf("restoring %s %s: %w", args[0], args[1], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s %s\n", result.Kind, result.ID)
				return nil
			})
		},
	}
}
