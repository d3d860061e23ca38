package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/playmatatu/poolsim/internal/game"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a YAML (or JSON, which is valid YAML) table file. An empty
// path yields the standard rack.
func LoadTable(eng *game.Engine, path string) (*game.Table, error) {
	if path == "" {
		return eng.Rack(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table file: %w", err)
	}

	var state game.TableState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse table file %s: %w", path, err)
	}
	t, err := eng.TableFromState(state)
	if err != nil {
		return nil, fmt.Errorf("table file %s: %w", path, err)
	}
	return t, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
