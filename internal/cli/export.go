package cli

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/petlife/internal/backup"
	"github.com/rcliao/petlife/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all pets and records as a JSON backup",
		Long: "Write a backup document to stdout, to --output, or to an auto-named file in the\n" +
			"current directory with --auto-name. Records the backup time on success.",
		Run: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Bool("auto-name", false, "Write to PetLife_Backup_<date>_<time>.json")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("output")
	autoName, _ := cmd.Flags().GetBool("auto-name")

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	doc, err := s.tracker.ExportData(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	if autoName && out == "" {
		out = backup.Filename(doc.ExportDate.Local())
	}

	if out == "" {
		err = backup.Encode(cmd.OutOrStdout(), doc)
	} else {
		err = writeBackupFile(out, doc)
	}
	if err != nil {
		exitErr("export", err)
	}

	if err := s.tracker.RecordBackup(cmd.Context()); err != nil {
		exitErr("record backup", err)
	}
	if out != "" {
		cmd.PrintErrf("wrote %s (%d pets, %d records)\n", out, len(doc.Pets), len(doc.Records))
	}
}

func writeBackupFile(path string, doc model.BackupDocument) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return backup.Encode(w, doc)
	})
}

// writeFileAtomic writes to a temp file next to path and renames it into
// place, so a failed write never leaves a truncated file at path.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".petlife-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
