package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefabs directory, relative to the working directory.
const Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Load reads a spec from Dir when present so it can be edited without
// rebuilding, and falls back to the embedded copy. name may carry a leading
// "prefabs/".
func Load(name string) ([]byte, error) {
	return read(specPath(name))
}

// LoadScript reads scripts/<name> with the same lookup as Load. Any of
// "demo.tengo", "scripts/demo.tengo" or "prefabs/scripts/demo.tengo" works.
func LoadScript(name string) ([]byte, error) {
	return read(scriptPath(name))
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(rel)
}

func specPath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
}

func scriptPath(name string) string {
	return path.Join("scripts", strings.TrimPrefix(specPath(name), "scripts/"))
}
