package cli

import (
	"time"

	"github.com/spf13/cobra"
)

type statusView struct {
	DB           string     `json:"db" yaml:"db"`
	LastModified *time.Time `json:"last_modified" yaml:"last_modified"`
	LastBackup   *time.Time `json:"last_backup" yaml:"last_backup"`
	// BackupStale is true when data changed after the last backup, or was never backed up.
	BackupStale bool `json:"backup_stale" yaml:"backup_stale"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show last-modified and last-backup times",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	v := statusView{DB: s.store.Path()}

	mod, ok, err := s.tracker.LastModified(cmd.Context())
	if err != nil {
		exitErr("status", err)
	}
	if ok {
		v.LastModified = &mod
	}
	bak, ok, err := s.tracker.LastBackup(cmd.Context())
	if err != nil {
		exitErr("status", err)
	}
	if ok {
		v.LastBackup = &bak
	}
	v.BackupStale = v.LastModified != nil && (v.LastBackup == nil || v.LastBackup.Before(*v.LastModified))

	output(cmd, v)
}
