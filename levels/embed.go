package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

type Level struct {
	Name     string   `yaml:"name"`
	Boxes    []Box    `yaml:"boxes"`
	Entities []Entity `yaml:"entities,omitempty"`
}

// Box is an axis-aligned collider. Layers name the collision layers it
// belongs to (ground, wall, camera).
type Box struct {
	Name   string     `yaml:"name"`
	Min    [3]float64 `yaml:"min"`
	Max    [3]float64 `yaml:"max"`
	Layers []string   `yaml:"layers"`
}

type Entity struct {
	Type     string                 `yaml:"type"`
	Position [3]float64             `yaml:"position"`
	Props    map[string]interface{} `yaml:"props,omitempty"`
}

// Spawn returns the position of the first entity of the given type.
func (l *Level) Spawn(entityType string) ([3]float64, bool) {
	for _, e := range l.Entities {
		if e.Type == entityType {
			return e.Position, true
		}
	}
	return [3]float64{}, false
}

// LoadLevelFromFS reads an embedded level. The .yaml suffix is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, levelFile(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

// LoadLevel prefers a file on disk under levels/ and falls back to the
// embedded copy, so edited levels are picked up without a rebuild.
func LoadLevel(name string) (*Level, error) {
	if data, err := os.ReadFile(filepath.Join("levels", levelFile(name))); err == nil {
		return parse(data)
	}
	return LoadLevelFromFS(name)
}

func levelFile(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return name
}

func parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if len(lvl.Boxes) == 0 {
		return nil, fmt.Errorf("level %q has no boxes", lvl.Name)
	}
	return &lvl, nil
}
