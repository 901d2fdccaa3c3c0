package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vamshi737/smartestimator/data"
)

func TestStoreRunLifecycle(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	dir, err := s.CreateRun("run-1")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("run dir missing: %v", err)
	}

	p, err := s.SaveUpload("run-1", "plan.png", strings.NewReader("not really a png"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if filepath.Base(p) != "plan.png" {
		t.Errorf("upload saved as %q", p)
	}

	if err := s.WriteJSON("run-1", "dims.json", map[string]int{"n": 3}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	names, err := s.ListArtifacts("run-1")
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	want := []string{"dims.json", "plan.png"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("ListArtifacts() = %v, want %v", names, want)
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, err := s.CreateRun("run-1"); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	bad := []string{"..", ".", "", "a/b", `a\b`, "../../etc/passwd"}
	for _, name := range bad {
		if _, err := s.ArtifactPath("run-1", name); err == nil {
			t.Errorf("ArtifactPath(%q) error = nil, want error", name)
		}
		if _, err := s.ArtifactPath(name, "x.json"); err == nil {
			t.Errorf("ArtifactPath run %q error = nil, want error", name)
		}
	}
	// Base names of traversal-ish uploads are still acceptable.
	if _, err := s.SaveUpload("run-1", "dir/plan.png", strings.NewReader("x")); err != nil {
		t.Errorf("SaveUpload() error = %v", err)
	}
}

func TestStoreArchiveResult(t *testing.T) {
	root := t.TempDir()
	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	result := &data.EstimateResult{
		SchemaVersion: data.CurrentSchemaVersion,
		RunID:         "run-2",
		Mode:          ModeIndia,
		StartTime:     time.Now(),
		EndTime:       time.Now(),
	}
	if err := s.ArchiveResult(result); err != nil {
		t.Fatalf("ArchiveResult() error = %v", err)
	}
	dated := filepath.Join(root, "results", time.Now().UTC().Format("2006/01/02"))
	entries, err := os.ReadDir(dated)
	if err != nil {
		t.Fatalf("ReadDir(%s) error = %v", dated, err)
	}
	if len(entries) != 1 {
		t.Fatalf("archive has %d entries, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "estimate-") || !strings.HasSuffix(name, ".run-2.json") {
		t.Errorf("archive file name = %q", name)
	}
}
