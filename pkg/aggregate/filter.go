// File: pkg/aggregate/filter.go
package aggregate

import (
	"os"
	"path/filepath"
)

// outcome is the classification of a candidate file.
type outcome int

const (
	outcomeAggregate  outcome = iota // readable text within the size limit
	outcomeSkipSelf                  // the output file itself, excluded silently
	outcomeSkipSize                  // larger than the configured maximum
	outcomeSkipBinary                // classified as binary content
	outcomeFail                      // stat or read failed
)

// shouldDescend reports whether the walker may recurse into a subdirectory
// with the given name.
func (c *Config) shouldDescend(dirName string) bool {
	return !c.SkipDirs[dirName]
}

// classifyFile decides what to do with a single candidate file. The checks run
// in a fixed order: output-file identity, stat, size, lossy read, binary
// heuristic. The size check precedes the read so oversized files are never
// loaded into memory. The decoded content is returned only for
// outcomeAggregate.
func classifyFile(filePath, outputPath string, maxBytes int64) (outcome, string, error) {
	absolutePath, err := filepath.Abs(filePath)
	if err == nil && absolutePath == outputPath {
		return outcomeSkipSelf, "", nil
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return outcomeFail, "", err
	}
	if info.Size() > maxBytes {
		return outcomeSkipSize, "", nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return outcomeFail, "", err
	}

	text := DecodeLossy(raw)
	if IsProbablyBinary(text, DefaultBinaryReplacementRatio) {
		return outcomeSkipBinary, "", nil
	}
	return outcomeAggregate, text, nil
}
