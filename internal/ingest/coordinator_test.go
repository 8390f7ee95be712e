package ingest

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/punchcard/internal/db"
)

const csvHeader = "UserID,EmployeeName,Date,Time\n"

type testEnv struct {
	csvDir      string
	dataDir     string
	store       *db.DB
	coordinator *Coordinator
	notified    int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		csvDir:  t.TempDir(),
		dataDir: t.TempDir(),
	}

	store, err := db.Open(filepath.Join(env.dataDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	env.store = store

	notifier := NewNotifier()
	notifier.SetObserver(func(Change) { env.notified++ })

	env.coordinator = NewCoordinator(
		env.csvDir,
		store,
		NewCheckpointStore(filepath.Join(env.dataDir, "state.json")),
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return env
}

func (e *testEnv) writeCSV(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.csvDir, name), []byte(content), 0644))
}

func (e *testEnv) appendCSV(t *testing.T, name, content string) {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(e.csvDir, name), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(content)
	require.NoError(t, err)
}

func (e *testEnv) punchCount(t *testing.T) int64 {
	t.Helper()
	count, err := e.store.CountPunches()
	require.NoError(t, err)
	return count
}

func TestRun_FirstIngest(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv",
		csvHeader+"1001,Alice,2026-01-05,09:00\n1001,Alice,2026-01-05,17:00\n")

	require.NoError(t, env.coordinator.Run())

	assert.EqualValues(t, 2, env.punchCount(t))
	assert.Equal(t, 1, env.notified)

	emp, err := env.store.GetEmployee("1001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", emp.Name)
}

func TestRun_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv",
		csvHeader+"1001,Alice,2026-01-05,09:00\n1001,Alice,2026-01-05,17:00\n")

	require.NoError(t, env.coordinator.Run())
	require.NoError(t, env.coordinator.Run())

	assert.EqualValues(t, 2, env.punchCount(t))
	// the second pass found no delta and must not notify
	assert.Equal(t, 1, env.notified)
}

func TestRun_AppendOnlyDelta(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv", csvHeader+"1001,Alice,2026-01-05,09:00\n")
	require.NoError(t, env.coordinator.Run())

	env.appendCSV(t, "attendance_2026-01.csv", "1001,Alice,2026-01-05,17:00\n")
	require.NoError(t, env.coordinator.Run())

	assert.EqualValues(t, 2, env.punchCount(t))

	state := env.coordinator.checkpoints.Load()
	assert.Equal(t, 2, state["attendance_2026-01.csv"].Rows)
}

func TestRun_TruncationRecovery(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv",
		csvHeader+"1001,Alice,2026-01-05,09:00\n1001,Alice,2026-01-05,12:00\n1001,Alice,2026-01-05,17:00\n")
	require.NoError(t, env.coordinator.Run())
	require.EqualValues(t, 3, env.punchCount(t))

	// device rewrote the export shorter; file must reprocess from zero
	env.writeCSV(t, "attendance_2026-01.csv",
		csvHeader+"1001,Alice,2026-01-05,09:00\n1001,Alice,2026-01-05,17:00\n")
	require.NoError(t, env.coordinator.Run())

	// replayed rows dedupe, nothing is deleted
	assert.EqualValues(t, 3, env.punchCount(t))

	state := env.coordinator.checkpoints.Load()
	assert.Equal(t, 2, state["attendance_2026-01.csv"].Rows)
}

func TestRun_SelfHealing(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv",
		csvHeader+"1001,Alice,2026-01-05,09:00\n1001,Alice,2026-01-05,17:00\n")
	require.NoError(t, env.coordinator.Run())
	require.EqualValues(t, 2, env.punchCount(t))

	// simulate the database being wiped behind the engine's back
	require.NoError(t, env.store.Close())
	dbGlob, err := filepath.Glob(filepath.Join(env.dataDir, "test.db*"))
	require.NoError(t, err)
	for _, f := range dbGlob {
		require.NoError(t, os.Remove(f))
	}

	store, err := db.Open(filepath.Join(env.dataDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	coordinator := NewCoordinator(
		env.csvDir,
		store,
		NewCheckpointStore(filepath.Join(env.dataDir, "state.json")),
		NewNotifier(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, coordinator.Run())

	count, err := store.CountPunches()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRun_ConcurrentTriggerDropped(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv", csvHeader+"1001,Alice,2026-01-05,09:00\n")

	// hold the run lock as an in-flight ingestion would
	env.coordinator.mu.Lock()
	require.NoError(t, env.coordinator.Run())
	assert.EqualValues(t, 0, env.punchCount(t))
	env.coordinator.mu.Unlock()

	// the next trigger recovers the dropped work
	require.NoError(t, env.coordinator.Run())
	assert.EqualValues(t, 1, env.punchCount(t))
}

func TestRun_SkipsUnparsableRows(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv", csvHeader+
		"1001,Alice,2026-01-05,09:00\n"+
		"1001,Alice,2026-01-05,25:00\n"+ // bad time
		",Nobody,2026-01-05,10:00\n"+ // missing id
		"1001,Alice,bogus,11:00\n"+ // bad date
		"1001,Alice,2026-01-05,17:00\n")

	require.NoError(t, env.coordinator.Run())

	assert.EqualValues(t, 2, env.punchCount(t))
	// the checkpoint still advances past skipped rows
	state := env.coordinator.checkpoints.Load()
	assert.Equal(t, 5, state["attendance_2026-01.csv"].Rows)
}

func TestRun_RenameSurvivesReingestion(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv", csvHeader+"1001,Alice,2026-01-05,09:00\n")
	require.NoError(t, env.coordinator.Run())

	require.NoError(t, env.store.RenameEmployee("1001", "Alicia Janssen"))

	env.appendCSV(t, "attendance_2026-01.csv", "1001,Alice,2026-01-05,17:00\n")
	require.NoError(t, env.coordinator.Run())

	emp, err := env.store.GetEmployee("1001")
	require.NoError(t, err)
	assert.Equal(t, "Alicia Janssen", emp.Name)
}

func TestRun_MultipleFiles(t *testing.T) {
	env := newTestEnv(t)
	env.writeCSV(t, "attendance_2026-01.csv", csvHeader+"1001,Alice,2026-01-31,09:00\n")
	env.writeCSV(t, "attendance_2026-02.csv", csvHeader+"1002,Bob,2026-02-01,08:30\n")
	env.writeCSV(t, "notes.txt", "not an export\n")
	env.writeCSV(t, "export.csv", csvHeader+"9999,Eve,2026-02-01,08:00\n")

	require.NoError(t, env.coordinator.Run())

	assert.EqualValues(t, 2, env.punchCount(t))
	_, err := env.store.GetEmployee("9999")
	assert.Error(t, err)

	state := env.coordinator.checkpoints.Load()
	assert.Len(t, state, 2)
}

func TestRun_EmptyDirectory(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.coordinator.Run())
	assert.Zero(t, env.notified)
}

func TestRun_MissingDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.coordinator.csvDir = filepath.Join(env.csvDir, "gone")
	require.NoError(t, env.coordinator.Run())
}

func TestMatchesExportName(t *testing.T) {
	assert.True(t, MatchesExportName("attendance_2026-01.csv"))
	assert.False(t, MatchesExportName("attendance_2026-01.csv.tmp"))
	assert.False(t, MatchesExportName("export_2026-01.csv"))
	assert.False(t, MatchesExportName("attendance_"))
}
