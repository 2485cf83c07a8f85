package runs

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "runs.db"))
	if err := repo.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInitCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "runs.db")
	repo := NewSQLiteRepository(dbPath)

	if err := repo.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
}

func TestCreateAndGetRun(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	run := &domain.Run{
		ProfileName: "bench",
		ScaleFactor: 0.5,
		Seed:        42,
		OutDir:      "/tmp/out",
		ConfigHash:  "abc123",
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(run); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected a generated run ID")
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ProfileName != "bench" || got.ScaleFactor != 0.5 || got.Seed != 42 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Status != domain.RunStatusRunning {
		t.Fatalf("expected running status, got %s", got.Status)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, run.StartedAt)
	}
	if got.CompletedAt != nil {
		t.Fatal("expected no completion time yet")
	}
}

func TestUpdateRunRecordsCompletion(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	run := &domain.Run{
		ProfileName: "bench",
		ScaleFactor: 1,
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(run); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	stats, _ := json.Marshal(&domain.RunStats{TablesGenerated: 8, TotalRows: 1000})
	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &now
	run.Stats = stats
	if err := repo.Update(run); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RunStatusSuccess {
		t.Fatalf("expected success, got %s", got.Status)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Fatalf("completed_at mismatch: %v", got.CompletedAt)
	}

	var decoded domain.RunStats
	if err := json.Unmarshal(got.Stats, &decoded); err != nil {
		t.Fatalf("stats did not round-trip: %v", err)
	}
	if decoded.TablesGenerated != 8 || decoded.TotalRows != 1000 {
		t.Fatalf("stats mismatch: %+v", decoded)
	}
}

func TestListFiltersAndLimits(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	base := time.Now().UTC().Truncate(time.Second)
	statuses := []domain.RunStatus{
		domain.RunStatusSuccess, domain.RunStatusFailed, domain.RunStatusSuccess,
	}
	for i, st := range statuses {
		run := &domain.Run{
			ProfileName: "bench",
			ScaleFactor: 1,
			Status:      st,
			StartedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(run); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	// Newest first.
	if !all[0].StartedAt.After(all[2].StartedAt) {
		t.Fatal("expected descending start order")
	}

	failed, err := repo.List(0, string(domain.RunStatusFailed))
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed run, got %d", len(failed))
	}

	limited, err := repo.List(2, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 runs with limit, got %d", len(limited))
	}
}

func TestNewRepositoryPicksBackend(t *testing.T) {
	t.Parallel()

	if _, ok := NewRepository("postgres://localhost:5432/runs").(*PostgresRepository); !ok {
		t.Fatal("postgres DSN should pick the postgres repository")
	}
	if _, ok := NewRepository("/tmp/runs.db").(*SQLiteRepository); !ok {
		t.Fatal("file path should pick the sqlite repository")
	}
}
