package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var bundled embed.FS

// Loader reads prefab specs and scripts. Files under Dir shadow the
// bundled copies one by one, so a partial override directory is fine.
type Loader struct {
	Dir string
}

// Load reads a spec file such as "player.yaml". A leading "prefabs/" is
// accepted and ignored.
func (l Loader) Load(name string) ([]byte, error) {
	return l.read(specPath(name))
}

// LoadScript reads a tengo script by bare name ("boss") or path.
func (l Loader) LoadScript(name string) ([]byte, error) {
	return l.read(scriptPath(name))
}

func (l Loader) read(rel string) ([]byte, error) {
	if l.Dir != "" {
		data, err := fs.ReadFile(os.DirFS(l.Dir), rel)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return fs.ReadFile(bundled, rel)
}

func specPath(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(s, "prefabs/")
}

func scriptPath(name string) string {
	s := specPath(name)
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) != ".tengo" {
		s += ".tengo"
	}
	return "scripts/" + s
}
