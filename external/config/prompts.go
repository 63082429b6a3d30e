package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/foxseedlab/meetnotes/internal/notes"
)

// LoadPrompts reads prompt template overrides from a TOML file:
//
//	action_items = """..."""
//	notes = """..."""
//
// An empty path returns the built-in prompts.
func LoadPrompts(path string) (notes.Prompts, error) {
	defaults := notes.DefaultPrompts()
	if path == "" {
		return defaults, nil
	}
	var p notes.Prompts
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return notes.Prompts{}, fmt.Errorf("read prompts file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return notes.Prompts{}, fmt.Errorf("prompts file %s has unknown keys: %v", path, undecoded)
	}
	return p.Merge(defaults), nil
}
