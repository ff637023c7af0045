package main

import (
	"github.com/spf13/cobra"
)

// createBackupCommand creates the backup command.
func createBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy settings.json to settings.backup.json",
		Long:  "Copy settings.json to settings.backup.json, replacing any previous backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.app.Backup(s.ctx) //nolint:wrapcheck // operation errors are already wrapped
		},
	}
}
