package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punchcard/internal/config"
	"github.com/balkashynov/punchcard/internal/db"
	"github.com/balkashynov/punchcard/internal/ingest"
	"github.com/balkashynov/punchcard/internal/log"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion pass and exit",
	Long: `Scan the export directory once, load any rows not yet in the database,
and exit. Useful from cron or for a manual sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.CSVDir == "" {
			return fmt.Errorf("PUNCHCARD_CSV_DIR is not set")
		}

		store, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		notifier := ingest.NewNotifier()
		gotNewData := false
		notifier.SetObserver(func(ingest.Change) { gotNewData = true })

		coordinator := ingest.NewCoordinator(
			cfg.CSVDir,
			store,
			ingest.NewCheckpointStore(cfg.CheckpointPath()),
			notifier,
			log.New("ingest"),
		)

		if err := coordinator.Run(); err != nil {
			return err
		}

		if gotNewData {
			fmt.Println("✓ New punches ingested")
		} else {
			fmt.Println("No new data to ingest")
		}
		return nil
	},
}
