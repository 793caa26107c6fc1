// Package cli implements the petlife CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/petlife/internal/config"
	"github.com/rcliao/petlife/internal/logger"
	"github.com/rcliao/petlife/internal/store"
	"github.com/rcliao/petlife/internal/tracker"
)

var (
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "petlife",
	Short: "Pet health records on your own machine",
	Long:  "Keep pet profiles and medical history in a local SQLite file, with JSON backup and restore.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PETLIFE_DB or ~/.petlife/petlife.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or yaml")
}

// session bundles the open store and the tracker built on it.
type session struct {
	store   *store.SQLiteStore
	tracker *tracker.Tracker
}

func (s *session) Close() error {
	return s.store.Close()
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		Writer: cmd.ErrOrStderr(),
	})

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	tr := tracker.New(s, tracker.WithLogger(log.With("db", cfg.DBPath)))

	if cfg.SeedOnStart {
		if _, err := tr.SeedDatabase(cmd.Context()); err != nil {
			s.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return &session{store: s, tracker: tr}, nil
}

func output(cmd *cobra.Command, v interface{}) {
	w := cmd.OutOrStdout()
	if formatFlag == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			exitErr("encode yaml", err)
		}
		enc.Close()
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode json", err)
	}
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
