package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Loader reads resources such as music from a directory tree. Resource names
// are slash separated and relative to the root, e.g. Sound/BGM/Town1.ogg.
type Loader struct {
	fsys fs.FS
	root string
}

func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{fsys: os.DirFS(dir), root: dir}
}

// NewLoaderFS reads resources from fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Root is the directory the loader reads from, empty for NewLoaderFS.
func (l *Loader) Root() string {
	return l.root
}

func (l *Loader) ReadFile(resource string) ([]byte, error) {
	clean, err := cleanResource(resource)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", resource, err)
	}
	return b, nil
}

func (l *Loader) Exists(resource string) bool {
	clean, err := cleanResource(resource)
	if err != nil {
		return false
	}
	_, err = fs.Stat(l.fsys, clean)
	return err == nil
}

// cleanResource also accepts dotted names such as Sound.BGM.Town1.ogg.
func cleanResource(resource string) (string, error) {
	s := strings.TrimSpace(filepath.ToSlash(resource))
	if s == "" {
		return "", fmt.Errorf("assets: empty resource name")
	}
	if !strings.Contains(s, "/") {
		if ext := path.Ext(s); ext != "" {
			s = strings.ReplaceAll(strings.TrimSuffix(s, ext), ".", "/") + ext
		}
	}
	s = strings.TrimPrefix(path.Clean("/"+s), "/")
	if !fs.ValidPath(s) {
		return "", fmt.Errorf("assets: invalid resource name %q", resource)
	}
	return s, nil
}
