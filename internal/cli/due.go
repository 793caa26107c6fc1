package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	dueCmd := &cobra.Command{
		Use:   "due",
		Short: "List upcoming reminders (records with a next due date from today on)",
		Run:   runDue,
	}

	weightsCmd := &cobra.Command{
		Use:   "weights [pet-id]",
		Short: "Show a pet's weight history, oldest first",
		Args:  cobra.ExactArgs(1),
		Run:   runWeights,
	}

	RootCmd.AddCommand(dueCmd, weightsCmd)
}

func runDue(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reminders, err := s.tracker.Upcoming(cmd.Context())
	if err != nil {
		exitErr("due", err)
	}
	output(cmd, reminders)
}

func runWeights(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	points, err := s.tracker.Weights(cmd.Context(), args[0])
	if err != nil {
		exitErr("weights", err)
	}
	output(cmd, points)
}
