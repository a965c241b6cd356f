// cmd/util.go
package cmd

import "path/filepath"

// dirOf returns the directory component of path, defaulting to "." when
// path has none, for os.MkdirAll calls before writing stage outputs.
func dirOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}
