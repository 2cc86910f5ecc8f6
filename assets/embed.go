package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed songs.yaml scripts/*.tengo
var builtinFS embed.FS

// SongTable is the built-in song table.
func SongTable() []byte {
	b, err := builtinFS.ReadFile("songs.yaml")
	if err != nil {
		panic(fmt.Sprintf("assets: embedded song table: %v", err))
	}
	return b
}

// DefaultScript is the name of the built-in behaviour script.
const DefaultScript = "jukebox.tengo"

// LoadScript reads a behaviour script. A path that exists on disk wins over
// the built-in script of the same name.
func LoadScript(path string) ([]byte, error) {
	if path == "" {
		path = DefaultScript
	}
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	data, err := builtinFS.ReadFile(cleanScriptPath(path))
	if err != nil {
		return nil, fmt.Errorf("assets: script %s: %w", path, err)
	}
	return data, nil
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}
