package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/emberforge/adventure-engine/pkg/worldfile"
)

// validate checks world definition files before they ship: YAML shape,
// naming conventions, and the referential invariants the engine assumes.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml> [more files...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", filename, err)
			failed = true
			continue
		}
		fmt.Printf("OK   %s\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var validWorldName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("world file must have a .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !validWorldName.MatchString(nameWithoutExt) {
		return fmt.Errorf("world filename %q must be lowercase snake_case (e.g. demo_cavern.yaml)", baseName)
	}

	def, err := worldfile.Load(filename)
	if err != nil {
		return err
	}

	// Build exercises the referential checks: start room, path targets,
	// catalog references, single placement, nesting depth.
	if _, _, err := def.Build(); err != nil {
		return err
	}
	return nil
}
