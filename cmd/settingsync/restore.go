package main

import (
	"github.com/spf13/cobra"
)

// createRestoreCommand creates the restore command.
func createRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore settings.json from the backup or the default file",
		Long: "Copy settings.backup.json over settings.json and delete the backup. " +
			"Without a backup, settings.default.json is copied instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.app.Restore(s.ctx) //nolint:wrapcheck // operation errors are already wrapped
		},
	}
}
