package config

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed assets/*.yaml
var assetsFS embed.FS

// Assets resolves asset names against a directory on disk first and the
// embedded defaults second.
type Assets struct {
	dir string
}

func NewAssets(dir string) *Assets {
	return &Assets{dir: dir}
}

// Dir is the on-disk override directory.
func (a *Assets) Dir() string {
	return a.dir
}

// Load returns the named asset.
func (a *Assets) Load(name string) ([]byte, error) {
	clean := cleanAssetPath(name)
	if a.dir != "" {
		if data, err := os.ReadFile(a.DiskPath(clean)); err == nil {
			return data, nil
		}
	}
	return assetsFS.ReadFile(path.Join("assets", clean))
}

// DiskPath is where name would live in the override directory.
func (a *Assets) DiskPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.dir, filepath.FromSlash(cleanAssetPath(name)))
}

func cleanAssetPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return s
}
