/*
Package fs provides small file system helpers for locating and
fingerprinting evaluation job files.
*/
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// YamlExt lists the file extensions of job files.
var YamlExt = []string{".yml", ".yaml"}

// FileExists returns true if a file exists at the given path and is not a directory.
func FileExists(fileName string) bool {
	if fileName == "" {
		return false
	}

	info, err := os.Stat(fileName)

	return err == nil && !info.IsDir()
}

// PathExists tests if a directory exists.
func PathExists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// Abs returns the absolute path, or the unchanged name if it cannot be resolved.
func Abs(name string) string {
	if name == "" {
		return ""
	}

	if result, err := filepath.Abs(name); err == nil {
		return result
	}

	return name
}

// IsYaml tests if the file name has a YAML extension.
func IsYaml(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))

	for _, e := range YamlExt {
		if ext == e {
			return true
		}
	}

	return false
}

// BasePrefix returns the file name without path and extension.
func BasePrefix(fileName string) string {
	base := filepath.Base(fileName)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
