package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/balkashynov/punchcard/internal/db"
	"github.com/balkashynov/punchcard/internal/parser"
)

const (
	exportPrefix = "attendance_"
	exportSuffix = ".csv"
	punchSource  = "device export"
)

// MatchesExportName reports whether a filename follows the device's
// export naming convention.
func MatchesExportName(name string) bool {
	return strings.HasPrefix(name, exportPrefix) && strings.HasSuffix(name, exportSuffix)
}

// Coordinator drives one ingestion pass: enumerate export files, compute
// each file's new-row delta from its checkpoint, insert the delta inside
// one transaction per file, then persist checkpoints and fan out a change
// notification. At most one pass runs at a time.
type Coordinator struct {
	csvDir      string
	store       *db.DB
	checkpoints *CheckpointStore
	notifier    *Notifier
	log         *slog.Logger

	mu sync.Mutex // held for the duration of one run
}

func NewCoordinator(csvDir string, store *db.DB, checkpoints *CheckpointStore, notifier *Notifier, log *slog.Logger) *Coordinator {
	return &Coordinator{
		csvDir:      csvDir,
		store:       store,
		checkpoints: checkpoints,
		notifier:    notifier,
		log:         log,
	}
}

// Run executes one ingestion pass. A call arriving while another run is in
// flight is dropped with a warning; the next trigger picks up whatever the
// dropped one would have processed. A failed file aborts only its own batch:
// remaining files are still attempted, and the collected errors are returned
// so the caller can log and rely on the next trigger for retry.
func (c *Coordinator) Run() error {
	if !c.mu.TryLock() {
		c.log.Warn("ingestion already running, trigger dropped")
		return nil
	}
	defer c.mu.Unlock()

	files, err := c.exportFiles()
	if err != nil {
		c.log.Warn("failed to list export directory", "dir", c.csvDir, "error", err)
		return nil
	}
	if len(files) == 0 {
		c.log.Info("no export files found", "dir", c.csvDir)
		return nil
	}

	state := c.checkpoints.Load()

	// Self-healing: an empty store with recorded progress means the
	// database was wiped, restored from an empty backup, or corrupted
	// behind our back. Drop every checkpoint and reingest all files; the
	// unique punch constraint makes the replay safe.
	count, err := c.store.CountPunches()
	if err != nil {
		return fmt.Errorf("failed to count punches: %w", err)
	}
	if count == 0 && len(state) > 0 {
		c.log.Warn("store is empty but checkpoints exist, resetting all checkpoints")
		state = map[string]Checkpoint{}
	}

	var (
		totalInserted int
		errs          []error
	)

	for _, path := range files {
		name := filepath.Base(path)
		inserted, err := c.ingestFile(path, name, state)
		if err != nil {
			c.log.Error("file ingestion failed", "file", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		totalInserted += inserted
	}

	if err := c.checkpoints.Save(state); err != nil {
		errs = append(errs, fmt.Errorf("failed to save checkpoints: %w", err))
	}

	if totalInserted > 0 {
		c.log.Info("ingestion complete", "inserted", totalInserted, "files", len(files))
		c.notifier.Notify(Change{})
	}

	return errors.Join(errs...)
}

// exportFiles lists matching export files in deterministic order.
func (c *Coordinator) exportFiles() ([]string, error) {
	entries, err := os.ReadDir(c.csvDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !MatchesExportName(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(c.csvDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ingestFile processes one file's delta and advances its checkpoint in
// state. A transaction failure leaves the checkpoint where it was.
func (c *Coordinator) ingestFile(path, name string, state map[string]Checkpoint) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.log.Warn("export file vanished", "file", name, "error", err)
		return 0, nil
	}

	cp := state[name]

	// A shrunken file was truncated or rewritten in place. Restart it from
	// row zero; already-stored punches dedupe away on re-insert.
	if info.Size() < cp.FileSize {
		c.log.Warn("export file truncated, reprocessing from start",
			"file", name, "size", info.Size(), "recorded", cp.FileSize)
		cp.Rows = 0
	}

	rows := parser.ReadRows(path, c.log)
	if len(rows) == 0 {
		c.log.Info("no rows found", "file", name)
		return 0, nil
	}

	offset := min(cp.Rows, len(rows))
	delta := rows[offset:]
	if len(delta) == 0 {
		state[name] = Checkpoint{Rows: len(rows), FileSize: info.Size()}
		return 0, nil
	}

	batch, skipped := normalizeRows(delta)
	if skipped > 0 {
		c.log.Warn("rows skipped", "file", name, "skipped", skipped)
	}

	inserted, err := c.store.IngestBatch(batch)
	if err != nil {
		return 0, err
	}

	state[name] = Checkpoint{Rows: len(rows), FileSize: info.Size()}
	c.log.Info("file ingested", "file", name,
		"new", len(delta), "inserted", inserted, "total", len(rows))
	return inserted, nil
}

// normalizeRows converts raw CSV rows to insertable punches, dropping rows
// with a missing identifier or an unnormalizable date or time. Dropped rows
// are counted, not fatal.
func normalizeRows(rows []parser.Row) ([]db.PunchRow, int) {
	var batch []db.PunchRow
	skipped := 0

	for _, r := range rows {
		id := strings.TrimSpace(r[parser.ColUserID])
		date, dateOK := parser.NormalizeDate(r[parser.ColDate])
		t, timeOK := parser.NormalizeTime(r[parser.ColTime])
		if id == "" || !dateOK || !timeOK {
			skipped++
			continue
		}

		name := strings.TrimSpace(r[parser.ColName])
		if name == "" {
			name = "Employee " + id
		}

		batch = append(batch, db.PunchRow{
			EmployeeID:   id,
			EmployeeName: name,
			Date:         date,
			Time:         t,
			Source:       punchSource,
		})
	}

	// deterministic insert order within a batch
	sort.Slice(batch, func(i, j int) bool {
		if batch[i].Date != batch[j].Date {
			return batch[i].Date < batch[j].Date
		}
		if batch[i].EmployeeID != batch[j].EmployeeID {
			return batch[i].EmployeeID < batch[j].EmployeeID
		}
		return batch[i].Time < batch[j].Time
	})

	return batch, skipped
}
