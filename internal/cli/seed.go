package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add demo data if the store has no pets",
		Run:   runSeed,
	}

	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	seeded, err := s.tracker.SeedDatabase(cmd.Context())
	if err != nil {
		exitErr("seed", err)
	}
	output(cmd, map[string]bool{"seeded": seeded})
}
