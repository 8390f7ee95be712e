package commands

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punchcard/internal/config"
	"github.com/balkashynov/punchcard/internal/db"
	"github.com/balkashynov/punchcard/internal/ingest"
	"github.com/balkashynov/punchcard/internal/log"
	"github.com/balkashynov/punchcard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion service and the query API",
	Long: `Run the full service: ingest any pending export rows, watch the export
directory for changes, and serve the attendance query API.

Configuration comes from PUNCHCARD_* environment variables; at minimum
PUNCHCARD_CSV_DIR must point at the device's export directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.New("punchcard")

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
		notifier.SetObserver(func(c ingest.Change) {
			logger.Info("attendance data changed", "employee", c.EmployeeID, "date", c.Date)
		})

		coordinator := ingest.NewCoordinator(
			cfg.CSVDir,
			store,
			ingest.NewCheckpointStore(cfg.CheckpointPath()),
			notifier,
			log.New("ingest"),
		)

		// Catch up on anything exported while we were down. A failure here
		// is logged, not fatal: the next file change retries it.
		if err := coordinator.Run(); err != nil {
			logger.Error("startup ingestion failed", "error", err)
		}

		watcher := ingest.NewWatcher(cfg.CSVDir, cfg.Debounce, coordinator.Run, log.New("watcher"))
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		srv := server.New(store, cfg.InternalToken, log.New("api"))
		httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Router()}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			httpServer.Close()
		}()

		logger.Info("query api listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
