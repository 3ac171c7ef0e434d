package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/match3/internal/level/formats"
)

//go:embed levels/*.yaml
var campaignFS embed.FS

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "levels")
	if err != nil {
		panic(fmt.Sprintf("level: embedded campaign: %v", err))
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// walk calls fn for every supported level file.
func (l *Loader) walk(fn func(name string) error) error {
	err := fs.WalkDir(l.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(name))) {
			return nil
		}
		return fn(name)
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return nil
}

// LoadAll recursively scans and loads all valid level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	err := l.walk(func(name string) error {
		lvl, err := l.LoadFile(name)
		if err != nil {
			// Skip invalid files; Check reports them
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// Check loads every level file and returns the problems found, keyed by file.
func (l *Loader) Check() (map[string]error, error) {
	problems := make(map[string]error)
	err := l.walk(func(name string) error {
		if _, err := l.LoadFile(name); err != nil {
			problems[name] = err
		}
		return nil
	})
	return problems, err
}

// LoadFile loads and validates a single level file, relative to Root.
func (l *Loader) LoadFile(name string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", name, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(name)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", name, err)
	}

	lvl := Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		Width:     parsed.Width,
		Height:    parsed.Height,
		Colors:    parsed.Colors,
		MinMatch:  parsed.MinMatch,
		Moves:     parsed.Moves,
		TimeLimit: parsed.TimeLimit,
		Goals:     parsed.Goals,
		Holes:     parsed.Holes,
		Jelly:     parsed.Jelly,
		Locked:    parsed.Locked,
		Layout:    parsed.Layout,
		Combo:     parsed.Combo,
		Metadata:  parsed.Metadata,
		FilePath:  path.Join(l.Root, name),
	}
	if err := Validate(lvl); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", name, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level %s: %w", id, ErrNotFound)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Level implements Provider.
func (l *Loader) Level(id string) (Level, error) {
	return l.LoadByID(id)
}

// List implements Provider.
func (l *Loader) List() ([]Level, error) {
	return l.LoadAll()
}

// Sources chains providers. Earlier providers shadow later ones on ID clashes.
type Sources []Provider

// Level returns the first level with the given ID.
func (s Sources) Level(id string) (Level, error) {
	for _, p := range s {
		lvl, err := p.Level(id)
		if err == nil {
			return lvl, nil
		}
		if !isNotFound(err) {
			return Level{}, err
		}
	}
	return Level{}, fmt.Errorf("level %s: %w", id, ErrNotFound)
}

// List merges every provider's levels, sorted by ID.
func (s Sources) List() ([]Level, error) {
	seen := make(map[string]bool)
	var out []Level
	for _, p := range s {
		levels, err := p.List()
		if err != nil {
			return nil, err
		}
		for _, lvl := range levels {
			if seen[lvl.ID] {
				continue
			}
			seen[lvl.ID] = true
			out = append(out, lvl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
