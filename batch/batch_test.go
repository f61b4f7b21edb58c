package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestSolveBatchPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeScore(t, dir, "a.yaml", "piece: {bpm: 80}\nevents: [[\"N\", 1, \"A4\"]]\n"),
		writeScore(t, dir, "b.yaml", "piece: {bpm: 80}\nevents: [[\"N\", 1, \"C4\"]]\n"),
		writeScore(t, dir, "missing.yaml", ""),
	}
	// Overwrite the third path with one that doesn't exist, to exercise
	// the per-item error path without aborting the whole batch.
	paths[2] = filepath.Join(dir, "does-not-exist.yaml")

	results := Solve(paths, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Path != paths[0] || results[1].Path != paths[1] || results[2].Path != paths[2] {
		t.Fatalf("results out of input order: %+v", results)
	}
	if results[0].Err != nil || results[1].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[1].Err)
	}
	if results[2].Err == nil {
		t.Fatalf("expected error for missing file")
	}
}
