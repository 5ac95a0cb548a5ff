package install

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bitfighters/launcher/internal/platform"
)

// DefaultMaxDepth bounds how far below the root the executable is searched.
const DefaultMaxDepth = 6

// FindExecutable searches root for a regular file named like executable and
// returns the shallowest match. Entries that cannot be read, typically for
// lack of permission, are skipped silently.
func FindExecutable(root, executable string, maxDepth int) (string, bool) {
	if root == "" {
		return "", false
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	best, bestDepth := "", -1
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := depthOf(root, path)
		if d.IsDir() {
			if depth >= maxDepth || (bestDepth >= 0 && depth+1 >= bestDepth) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !platform.MatchesExecutable(d.Name(), executable) {
			return nil
		}
		if bestDepth < 0 || depth < bestDepth {
			best, bestDepth = path, depth
		}
		return nil
	})

	return best, bestDepth >= 0
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

