package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk directory searched before the embedded copies.
var Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Load returns a prefab or scenario spec by name. A copy under Dir wins over
// the embedded one so edits are picked up without a rebuild.
func Load(name string) ([]byte, error) {
	return read(trimPrefabRoot(name))
}

// LoadScript returns a tengo input script. Names may be given with or
// without the prefabs/ and scripts/ prefixes.
func LoadScript(name string) ([]byte, error) {
	return read(path.Join("scripts", strings.TrimPrefix(trimPrefabRoot(name), "scripts/")))
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

func trimPrefabRoot(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}
