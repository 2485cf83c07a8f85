package profiles

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListLoadsYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.yaml", `
name: small
scale_factor: 0.1
seed: 7
tables: [part, region]
`)
	writeFile(t, dir, "big.json", `{"name": "big", "scale_factor": 10}`)
	writeFile(t, dir, "notes.txt", "ignored")

	repo := NewFileRepository(dir)
	list, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}

	small, err := repo.Get("small")
	if err != nil {
		t.Fatal(err)
	}
	if small.ScaleFactor != 0.1 {
		t.Fatalf("expected scale factor 0.1, got %v", small.ScaleFactor)
	}
	if small.Seed == nil || *small.Seed != 7 {
		t.Fatalf("expected seed 7, got %v", small.Seed)
	}
	if len(small.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %v", small.Tables)
	}
	// ID defaults to the file name.
	if small.ID != "small.yaml" {
		t.Fatalf("expected ID small.yaml, got %q", small.ID)
	}
}

func TestGetByPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.yaml", `
name: custom
scale_factor: 2
row_overrides:
  part: 500
line_count:
  min: 2
  max: 4
`)

	repo := NewFileRepository(t.TempDir())
	p, err := repo.GetByPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.RowOverrides["part"] != 500 {
		t.Fatalf("row override did not load: %v", p.RowOverrides)
	}
	if p.LineCount == nil || p.LineCount.Min != 2 || p.LineCount.Max != 4 {
		t.Fatalf("line count did not load: %v", p.LineCount)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "absent"))
	list, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestGetUnknownProfile(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	if _, err := repo.Get("missing"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
