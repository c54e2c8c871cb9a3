package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a scene spec. A copy under prefabs/ on disk wins over the
// embedded one so edits apply without a rebuild.
func Load(name string) ([]byte, error) {
	return readPrefab(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads an ease script by name, with or without the .tengo
// extension or a scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	return readPrefab(ScriptsFS, cleanScriptPath(name))
}

func readPrefab(embedded fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(p), "prefabs/")
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) != ".tengo" {
		s += ".tengo"
	}
	return path.Join("scripts", s)
}
