// File: pkg/aggregate/config.go
package aggregate

import "path/filepath"

// Defaults for the aggregation run.
const (
	// DefaultMaxFileSizeMB is the upper bound for file inclusion, in megabytes.
	DefaultMaxFileSizeMB = 5.0

	// DefaultBinaryReplacementRatio is the replacement-character density above
	// which decoded text is treated as binary.
	DefaultBinaryReplacementRatio = 0.3
)

// Config holds the options for a single aggregation run. It is treated as
// immutable once Run starts.
type Config struct {
	RootDir          string          // The directory tree to aggregate
	OutputPath       string          // Destination file for the aggregated output (overwritten)
	MaxFileSize      int64           // Files strictly larger than this (in bytes) are skipped
	IncludeWorkflows bool            // Emit a dedicated .github/workflows section first
	SkipDirs         map[string]bool // Directory names pruned from traversal wherever they appear
}

// Summary holds the counters accumulated over one run.
type Summary struct {
	FilesSeen          int // Files encountered by the tree phase
	FilesAggregated    int // Files written as FILE records
	WorkflowsIncluded  int // Files written as GIT WORKFLOW records
	FilesSkippedSize   int // Files skipped for exceeding MaxFileSize
	FilesSkippedBinary int // Files skipped by the binary heuristic
	FilesFailed        int // Files that could not be stat'ed or read
}

// DefaultSkipDirs returns the directory names excluded from traversal:
// dependency caches, build output, mobile build artifacts, IDE clutter, and
// VCS/interpreter caches. The returned map is owned by the caller.
func DefaultSkipDirs() map[string]bool {
	return map[string]bool{
		// Dependencies / caches
		"node_modules": true,
		".pnpm-store":  true,
		".yarn":        true,
		".turbo":       true,

		// Build / output
		"build":   true,
		"dist":    true,
		".next":   true,
		".nuxt":   true,
		".output": true,
		".vite":   true,

		// Flutter / mobile build & tooling
		".dart_tool": true,
		".gradle":    true,
		"ios":        true,
		"android":    true,

		// IDE / tooling / clutter
		".idea":    true,
		".vscode":  true,
		"coverage": true,

		// VCS / Python cache
		".git":        true,
		".svn":        true,
		".hg":         true,
		"__pycache__": true,
	}
}

// MaxBytesFromMB converts a size limit expressed in megabytes to bytes.
func MaxBytesFromMB(megabytes float64) int64 {
	return int64(megabytes * 1024 * 1024)
}

// DefaultOutputPath derives an output file name from the root directory's
// basename, placed in the current working directory.
func DefaultOutputPath(rootDir string) string {
	name := filepath.Base(filepath.Clean(rootDir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "aggregated"
	}
	absolute, err := filepath.Abs(name + ".txt")
	if err != nil {
		return name + ".txt"
	}
	return absolute
}
