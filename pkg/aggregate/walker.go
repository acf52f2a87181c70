// File: pkg/aggregate/walker.go
package aggregate

import (
	"os"
	"path/filepath"
)

// walkFunc receives one directory per call together with its immediate
// subdirectory and file names, both in lexicographic order. It returns the
// subdirectories to descend into; omitting a name prunes that whole subtree.
type walkFunc func(dir string, subdirs, files []string) []string

// walkTree visits root and its subdirectories in a pre-order, depth-first
// walk. Entries come from os.ReadDir, so ordering is stable and symlinks to
// directories are reported as files rather than followed, which keeps the
// walk finite on trees containing symlink cycles. Directories that cannot be
// read are reported through onError and skipped.
func walkTree(root string, visit walkFunc, onError func(dir string, err error)) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if onError != nil {
			onError(root, err)
		}
		return
	}

	var subdirs, files []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}

	for _, name := range visit(root, subdirs, files) {
		walkTree(filepath.Join(root, name), visit, onError)
	}
}
