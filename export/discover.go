package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dbfkit/go-dbase/dbase"
)

// IsTable reports if name has the table extension, ignoring case
func IsTable(name string) bool {
	return strings.EqualFold(filepath.Ext(name), string(dbase.DBF))
}

// Discover expands paths to the table files to convert.
// Files are taken as given, directories are scanned for tables, their
// subdirectories only if recursive is set. The result is sorted and has no duplicates.
func Discover(paths []string, recursive bool) ([]string, error) {
	seen := make(map[string]struct{})
	tables := make([]string, 0)
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		tables = append(tables, path)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if IsTable(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
	}
	sort.Strings(tables)
	return tables, nil
}
