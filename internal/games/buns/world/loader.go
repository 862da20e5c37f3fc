package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

// unlinked is the link value editors write for "no neighbour".
const unlinked = "__UNLINKED__"

// Config file names, tried in this order.
var configNames = []string{"config.json", "config.yaml"}

type worldFile struct {
	Enabled bool         `json:"Enabled" yaml:"Enabled"`
	Title   string       `json:"Title" yaml:"Title"`
	Burrows []burrowFile `json:"Burrows" yaml:"Burrows"`
}

type burrowFile struct {
	Directory       string    `json:"Directory" yaml:"Directory"`
	Name            string    `json:"Name" yaml:"Name"`
	Indicator       string    `json:"Indicator" yaml:"Indicator"`
	HasSurfaceEntry bool      `json:"HasSurfaceEntry" yaml:"HasSurfaceEntry"`
	Depth           int       `json:"Depth" yaml:"Depth"`
	Links           linksFile `json:"Links" yaml:"Links"`
	ElevatorDepths  []int     `json:"ElevatorDepths" yaml:"ElevatorDepths"`
}

type linksFile struct {
	Left  string `json:"Left" yaml:"Left"`
	Up    string `json:"Up" yaml:"Up"`
	Right string `json:"Right" yaml:"Right"`
	Down  string `json:"Down" yaml:"Down"`
}

type levelFile struct {
	Name  string    `json:"Name" yaml:"Name"`
	Tools toolsFile `json:"Tools" yaml:"Tools"`
}

type toolsFile struct {
	Traps    int `json:"Traps" yaml:"Traps"`
	Pickaxes int `json:"Pickaxes" yaml:"Pickaxes"`
	Carrots  int `json:"Carrots" yaml:"Carrots"`
	Shovels  int `json:"Shovels" yaml:"Shovels"`
}

// LoadWorlds loads every world directory under root, sorted by name.
// Subdirectories without a config file are skipped.
func LoadWorlds(root string) ([]*World, error) {
	fsys := os.DirFS(root)
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading worlds dir %s: %w", root, err)
	}

	var worlds []*World
	for _, e := range entries {
		if !e.IsDir() || !hasConfig(fsys, e.Name()) {
			continue
		}
		w, err := LoadWorld(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}

	sort.Slice(worlds, func(i, j int) bool { return worlds[i].Dir < worlds[j].Dir })
	return worlds, nil
}

func hasConfig(fsys fs.FS, dir string) bool {
	for _, name := range configNames {
		if _, err := fs.Stat(fsys, path.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// LoadWorld loads the world stored in dir. Loading is all-or-nothing:
// any malformed file fails the whole world.
func LoadWorld(fsys fs.FS, dir string) (*World, error) {
	var cfg worldFile
	cfgPath, err := readConfig(fsys, dir, &cfg)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]BurrowID, len(cfg.Burrows))
	for i, b := range cfg.Burrows {
		if _, dup := ids[b.Name]; dup {
			return nil, fmt.Errorf("duplicate burrow %s in %s", b.Name, cfgPath)
		}
		ids[b.Name] = BurrowID(i)
	}

	burrows := make([]Burrow, len(cfg.Burrows))
	for i, b := range cfg.Burrows {
		links, err := resolveLinks(b.Links, ids)
		if err != nil {
			return nil, fmt.Errorf("burrow %s in %s: %w", b.Name, cfgPath, err)
		}
		levels, err := loadLevels(fsys, path.Join(dir, b.Directory), b.Name, b.Depth)
		if err != nil {
			return nil, err
		}
		burrows[i] = Burrow{
			Name:            b.Name,
			Directory:       b.Directory,
			Indicator:       b.Indicator,
			HasSurfaceEntry: b.HasSurfaceEntry,
			Links:           links,
			Levels:          levels,
			ElevatorDepths:  b.ElevatorDepths,
		}
	}

	w, err := NewWorld(cfg.Title, burrows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	w.Enabled = cfg.Enabled
	w.Dir = dir
	return w, nil
}

// readConfig decodes the first config file present in dir and returns its path.
func readConfig(fsys fs.FS, dir string, cfg *worldFile) (string, error) {
	for _, name := range configNames {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return p, fmt.Errorf("reading file %s: %w", p, err)
		}
		if err := decode(p, data, cfg); err != nil {
			return p, fmt.Errorf("parsing file %s: %w", p, err)
		}
		return p, nil
	}
	return "", fmt.Errorf("no config.json or config.yaml in %s: %w", dir, fs.ErrNotExist)
}

// decode picks the decoder by file extension. Unknown keys are errors so a
// misspelled link or tool name cannot load as an empty value.
func decode(name string, data []byte, v any) error {
	if path.Ext(name) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func resolveLinks(lf linksFile, ids map[string]BurrowID) ([core.DirectionCount]BurrowID, error) {
	var links [core.DirectionCount]BurrowID
	named := map[core.Direction]string{
		core.Left:  lf.Left,
		core.Up:    lf.Up,
		core.Right: lf.Right,
		core.Down:  lf.Down,
	}
	for _, d := range core.Directions() {
		name := named[d]
		if name == "" || name == unlinked {
			links[d] = NoBurrow
			continue
		}
		id, ok := ids[name]
		if !ok {
			return links, fmt.Errorf("unknown burrow %q in link %s", name, d)
		}
		links[d] = id
	}
	return links, nil
}

// loadLevels reads depths 1..depth from dir. A depth with neither file is an
// empty slot; a depth with only one of the two files is an error.
func loadLevels(fsys fs.FS, dir, burrow string, depth int) ([]*LevelTemplate, error) {
	if depth < 0 {
		return nil, fmt.Errorf("burrow %s: negative depth %d", burrow, depth)
	}
	levels := make([]*LevelTemplate, depth+1)

	for d := 1; d <= depth; d++ {
		levelPath := path.Join(dir, strconv.Itoa(d)+".level")
		metaPath, metaOK := findSidecar(fsys, dir, d)
		_, statErr := fs.Stat(fsys, levelPath)
		levelOK := statErr == nil

		switch {
		case !levelOK && !metaOK:
			continue
		case levelOK != metaOK:
			return nil, fmt.Errorf("burrow %s depth %d: found only one of %s and %s",
				burrow, d, levelPath, path.Join(dir, strconv.Itoa(d)+".json"))
		}

		tmpl, err := loadLevel(fsys, levelPath, metaPath)
		if err != nil {
			return nil, fmt.Errorf("burrow %s depth %d: %w", burrow, d, err)
		}
		levels[d] = tmpl
	}
	return levels, nil
}

func findSidecar(fsys fs.FS, dir string, depth int) (string, bool) {
	for _, ext := range []string{".json", ".yaml"} {
		p := path.Join(dir, strconv.Itoa(depth)+ext)
		if _, err := fs.Stat(fsys, p); err == nil {
			return p, true
		}
	}
	return "", false
}

func loadLevel(fsys fs.FS, levelPath, metaPath string) (*LevelTemplate, error) {
	raw, err := fs.ReadFile(fsys, metaPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", metaPath, err)
	}
	var meta levelFile
	if err := decode(metaPath, raw, &meta); err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", metaPath, err)
	}

	text, err := fs.ReadFile(fsys, levelPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", levelPath, err)
	}
	level, err := core.ParseLevel(string(text))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", levelPath, err)
	}
	if !level.HasPlayerStart() {
		return nil, fmt.Errorf("%s: %w", levelPath, ErrNoPlayerStart)
	}

	tools, err := toolsOf(meta.Tools)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metaPath, err)
	}
	return NewLevelTemplate(meta.Name, levelPath, tools, level), nil
}

func toolsOf(t toolsFile) (core.Tools, error) {
	var tools core.Tools
	tools[core.Trap] = t.Traps
	tools[core.Pickaxe] = t.Pickaxes
	tools[core.Carrot] = t.Carrots
	tools[core.Shovel] = t.Shovels
	for item, n := range tools {
		if n < 0 {
			return tools, fmt.Errorf("negative %s count %d", core.Item(item), n)
		}
	}
	return tools, nil
}
