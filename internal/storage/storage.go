// Package storage persists the Repository Planning Graph and its auxiliary
// state under a project's .rpg/ directory. Reads go through afs.Service,
// matching the teacher's fs.DownloadWithURL read pattern; writes use a
// plain temp-file-plus-rename (the pack has no example of afs's write-side
// API to ground against, and os.Rename already gives the atomicity the
// spec requires).
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"

	"github.com/viant/rpg/internal/graph"
)

const (
	graphFile    = "graph.json"
	backupSuffix = ".bak"
	dirName      = ".rpg"
)

// Store persists and loads a single project's graph and auxiliary files
// under repoRoot/.rpg/.
type Store struct {
	fs       afs.Service
	repoRoot string
}

// New returns a Store rooted at repoRoot.
func New(repoRoot string) *Store {
	return &Store{fs: afs.New(), repoRoot: repoRoot}
}

func (s *Store) dir() string       { return filepath.Join(s.repoRoot, dirName) }
func (s *Store) graphPath() string { return filepath.Join(s.dir(), graphFile) }

// AuxPath returns the path of a named auxiliary file under .rpg/ (e.g.
// "pending_routing.json", "quality_baseline.yaml", "ablation_report.yaml").
func (s *Store) AuxPath(name string) string { return filepath.Join(s.dir(), name) }

// Load reads the graph, rebuilding its derived indexes. A missing file
// returns (nil, false, nil).
func (s *Store) Load(ctx context.Context) (*graph.Document, bool, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.graphPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: read %s: %w", s.graphPath(), err)
	}

	doc := &graph.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, false, fmt.Errorf("storage: decode %s: %w", s.graphPath(), err)
	}
	doc.Load()
	return doc, true, nil
}

// ReadAux loads a named auxiliary file's raw bytes, or (nil, false, nil) if
// absent.
func (s *Store) ReadAux(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.AuxPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, true, nil
}

// Save writes doc atomically (temp file + rename), ensures .rpg/ is
// git-ignored, and returns the path written.
func (s *Store) Save(ctx context.Context, doc *graph.Document) (string, error) {
	if err := s.ensureGitignore(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("storage: encode graph: %w", err)
	}

	if err := atomicWrite(s.graphPath(), data); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", s.graphPath(), err)
	}
	return s.graphPath(), nil
}

// WriteAux atomically writes a named auxiliary file under .rpg/.
func (s *Store) WriteAux(name string, data []byte) error {
	if err := atomicWrite(s.AuxPath(name), data); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Backup copies the current graph.json to graph.json.bak once, before a
// destructive rebuild. It is a no-op if no graph exists yet.
func (s *Store) Backup(ctx context.Context) error {
	data, err := s.fs.DownloadWithURL(ctx, s.graphPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("storage: read %s for backup: %w", s.graphPath(), err)
	}
	backupPath := s.graphPath() + backupSuffix
	if err := atomicWrite(backupPath, data); err != nil {
		return fmt.Errorf("storage: write backup %s: %w", backupPath, err)
	}
	return nil
}

// ensureGitignore appends ".rpg/" to the repo's .gitignore on first write,
// if not already present.
func (s *Store) ensureGitignore() error {
	path := filepath.Join(s.repoRoot, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: read .gitignore: %w", err)
	}
	content := string(data)
	if containsLine(content, dirName+"/") {
		return nil
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		content += "\n"
	}
	content += dirName + "/\n"
	return atomicWrite(path, []byte(content))
}

func containsLine(content, line string) bool {
	for _, l := range splitLines(content) {
		if l == line {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
