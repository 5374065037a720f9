package paradigm

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed defs/*.toml
var builtinDefs embed.FS

// Registry holds loaded paradigm definitions, ordered by name for
// deterministic application.
type Registry struct {
	defs []*Definition
}

// Names returns the loaded paradigm names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the loaded definitions in deterministic (name-sorted)
// order.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LoadBuiltins loads the rules shipped with the module (defs/*.toml).
func LoadBuiltins() (*Registry, error) {
	reg := &Registry{}
	entries, err := fs.Glob(builtinDefs, "defs/*.toml")
	if err != nil {
		return nil, fmt.Errorf("paradigm: glob builtins: %w", err)
	}
	for _, entry := range entries {
		data, err := builtinDefs.ReadFile(entry)
		if err != nil {
			return nil, fmt.Errorf("paradigm: read %s: %w", entry, err)
		}
		def := &Definition{}
		if _, err := toml.Decode(string(data), def); err != nil {
			return nil, fmt.Errorf("paradigm: decode %s: %w", entry, err)
		}
		reg.defs = append(reg.defs, def)
	}
	return reg, nil
}

// LoadProjectOverrides loads additional *.toml rule files from
// repoRoot/.rpg/paradigms/, appending to reg. A missing directory is not
// an error.
func LoadProjectOverrides(reg *Registry, repoRoot string) error {
	dir := filepath.Join(repoRoot, ".rpg", "paradigms")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("paradigm: list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".toml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		def := &Definition{}
		if _, err := toml.DecodeFile(filepath.Join(dir, name), def); err != nil {
			return fmt.Errorf("paradigm: decode %s: %w", name, err)
		}
		reg.defs = append(reg.defs, def)
	}
	return nil
}
