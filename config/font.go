package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
)

// ResolveFont returns the file path for a run's font.
//
// An existing file path (relative paths are tried against baseDir first
// when it is set) is returned as is. Anything else is looked up among the
// system fonts by file or family name.
func ResolveFont(name, baseDir string) (string, error) {
	candidates := []string{name}
	if baseDir != "" && !filepath.IsAbs(name) {
		candidates = append([]string{filepath.Join(baseDir, name)}, candidates...)
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}

	path, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("config: font %q not found: %w", name, err)
	}
	return path, nil
}
