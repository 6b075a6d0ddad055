package clusteval

import (
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/photoprism/clusteval/pkg/fs"
)

// FindJobs returns the job files for the given paths. Directories are
// searched recursively for YAML files, in lexical order.
func FindJobs(paths ...string) (result []string, err error) {
	for _, p := range paths {
		switch {
		case fs.FileExists(p):
			result = append(result, fs.Abs(p))
		case fs.PathExists(p):
			err = godirwalk.Walk(p, &godirwalk.Options{
				Callback: func(fileName string, info *godirwalk.Dirent) error {
					if info.IsDir() {
						if fileName != p && filepath.Base(fileName)[0] == '.' {
							return filepath.SkipDir
						}

						return nil
					}

					if fs.IsYaml(fileName) {
						result = append(result, fs.Abs(fileName))
					}

					return nil
				},
				Unsorted:            false,
				FollowSymbolicLinks: true,
			})

			if err != nil {
				return result, fmt.Errorf("job: %s in %s", err, p)
			}
		default:
			return result, fmt.Errorf("job: %s not found", p)
		}
	}

	return result, nil
}
