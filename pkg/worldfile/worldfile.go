// Package worldfile loads authored world definitions and builds the
// initial room graph and player the engine runs against. The loader is
// where the structural invariants are established: after a successful
// Build, every path target resolves and every item lives in exactly one
// place.
package worldfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Definition is the YAML form of a world. Items are authored once in a
// catalog and placed by name; rooms, enemies and paths are lists so
// authored order is preserved in listings.
type Definition struct {
	Name        string             `yaml:"name" validate:"required"`
	Description string             `yaml:"description"`
	StartRoom   string             `yaml:"start_room" validate:"required"`
	Player      PlayerDef          `yaml:"player" validate:"required"`
	Items       map[string]ItemDef `yaml:"items"`
	Rooms       []RoomDef          `yaml:"rooms" validate:"required,min=1,dive"`
}

// PlayerDef is the authored starting state of the player.
type PlayerDef struct {
	HP        int      `yaml:"hp" validate:"required,gt=0"`
	Inventory []string `yaml:"inventory"`
	MainHand  string   `yaml:"main_hand"`
}

// ItemDef is a catalog entry. Damage makes the item a weapon; Container
// or a non-empty Contents list makes it a container.
type ItemDef struct {
	Description string   `yaml:"description"`
	Inspection  string   `yaml:"inspection"`
	Damage      *int     `yaml:"damage"`
	Container   bool     `yaml:"container"`
	Contents    []string `yaml:"contents"`
}

// RoomDef is an authored room.
type RoomDef struct {
	ID          string     `yaml:"id" validate:"required"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Items       []string   `yaml:"items"`
	Enemies     []EnemyDef `yaml:"enemies" validate:"dive"`
	Paths       []PathDef  `yaml:"paths" validate:"dive"`
}

// EnemyDef is an authored enemy.
type EnemyDef struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Inspection  string   `yaml:"inspection"`
	HP          int      `yaml:"hp" validate:"required,gt=0"`
	Loot        []string `yaml:"loot"`
}

// PathDef is an authored directed edge.
type PathDef struct {
	Direction   string `yaml:"direction" validate:"required"`
	Target      string `yaml:"target" validate:"required"`
	Locked      bool   `yaml:"locked"`
	Closed      bool   `yaml:"closed"`
	Description string `yaml:"description"`
}

// Load reads and parses a world definition file. Unknown YAML fields
// are rejected so authoring typos fail loudly.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open world file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse world file %s: %w", filepath.Base(path), err)
	}

	if err := validator.New().Struct(&def); err != nil {
		return nil, fmt.Errorf("invalid world file %s: %w", filepath.Base(path), err)
	}
	return &def, nil
}

// List returns the world names (file names without extension) available
// in a directory, sorted for stable presentation.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read worlds dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve maps a world name back to its file path within dir.
func Resolve(dir, name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("world %q not found in %s", name, dir)
}
