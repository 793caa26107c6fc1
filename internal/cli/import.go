package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/petlife/internal/backup"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Restore a JSON backup (merge)",
		Long: "Import a backup produced by export, from a file or stdin.\n\n" +
			"Import merges: pets and records already stored but absent from the backup are kept;\n" +
			"entries present in both are replaced by the backup's copy.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open backup", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := backup.Decode(r)
	if err != nil {
		exitErr("parse backup", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.tracker.ImportData(cmd.Context(), doc)
	if err != nil {
		exitErr("import", err)
	}

	output(cmd, map[string]interface{}{"ok": true, "pets": res.Pets, "records": res.Records})
}
