package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vamshi737/smartestimator/data"
	"github.com/vamshi737/smartestimator/logging"
)

// Store manages the on-disk layout under the data directory: one
// directory per run holding the upload and every artifact, plus a dated
// archive of run records.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "runs"), 0755); err != nil {
		return nil, fmt.Errorf("pipeline: cannot create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// CreateRun makes the per-run directory and returns its path.
func (s *Store) CreateRun(runID string) (string, error) {
	if err := checkName(runID); err != nil {
		return "", err
	}
	dir := filepath.Join(s.dir, "runs", runID)
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("pipeline: cannot create run dir: %w", err)
	}
	return dir, nil
}

// SaveUpload writes the client's plan file into the run directory under
// its original base name and returns the saved path.
func (s *Store) SaveUpload(runID, filename string, r io.Reader) (string, error) {
	name := filepath.Base(filepath.ToSlash(filename))
	if err := checkName(name); err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, "runs", runID, name)
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("pipeline: cannot save upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("pipeline: cannot save upload: %w", err)
	}
	return p, nil
}

// ArtifactPath resolves a run artifact for download. Names that try to
// escape the run directory are rejected.
func (s *Store) ArtifactPath(runID, filename string) (string, error) {
	if err := checkName(runID); err != nil {
		return "", err
	}
	if err := checkName(filename); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, "runs", runID, filename), nil
}

// ListArtifacts returns the base names of every file in the run directory.
func (s *Store) ListArtifacts(runID string) ([]string, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.dir, "runs", runID))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// WriteJSON writes a stage artifact into the run directory.
func (s *Store) WriteJSON(runID, filename string, v interface{}) error {
	p, err := s.ArtifactPath(runID, filename)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: cannot encode %s: %w", filename, err)
	}
	return os.WriteFile(p, raw, 0644)
}

// ArchiveResult serializes the run record under a dated directory. The
// nanosecond timestamp in the name makes conflicts unlikely; O_EXCL will
// let us know if that assumption fails.
func (s *Store) ArchiveResult(result *data.EstimateResult) error {
	timestamp := time.Now().UTC()
	dir := path.Join(s.dir, "results", timestamp.Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	name := dir + "/estimate-" + timestamp.Format("20060102T150405.000000000Z") + "." + result.RunID + ".json"
	fp, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		logging.Logger.WithError(err).Warn("cannot create result file")
		return err
	}
	defer fp.Close()
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = fp.Write(raw)
	return err
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("pipeline: invalid name %q", name)
	}
	return nil
}
