package cmd

import (
	"fmt"
	"time"

	"github.com/fbz-tec/skytrack/core/db"
	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/spf13/cobra"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the airport tables from PostgreSQL into a SQLite file",
	Long: `Copies every airport table into a SQLite snapshot. The report can then run
offline with --sqlite <file>.`,
	Example: `  skytrack snapshot --out snapshot/skytrack.db`,
	Args:    cobra.NoArgs,
	RunE:    runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot/skytrack.db", "Snapshot file to create")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if sqlitePath != "" {
		return fmt.Errorf("snapshot reads from PostgreSQL; --sqlite cannot be used here")
	}

	src, source, err := openPostgres(snapshotSource)
	if err != nil {
		return err
	}
	defer src.Close()

	dst := db.NewSQLStore(snapshotOut, true)
	if err := dst.Connect(); err != nil {
		return err
	}
	defer dst.Close()

	start := time.Now()
	logger.Info("Snapshot of %s into %s", source, snapshotOut)
	copied, err := db.Snapshot(cmd.Context(), src, dst, db.AirportTables)
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	total := 0
	for _, n := range copied {
		total += n
	}
	logger.Success("Snapshot complete: %d tables, %d rows (%v)", len(copied), total, time.Since(start).Round(time.Millisecond))
	return nil
}
