// Package aggregate walks a directory tree and flattens every probably-textual
// file into a single output file, one framed record per source file. Dependency,
// build, and VCS directories are pruned; oversized and binary files are skipped
// and accounted for in a run summary.
package aggregate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	separatorLine = "========================================"

	recordKindFile     = "FILE"
	recordKindWorkflow = "GIT WORKFLOW"

	workflowsSubdir = ".github/workflows"
)

// Run performs one aggregation pass and returns the accumulated counters.
// Only an invalid root directory or an unwritable output file aborts the run;
// every per-file problem is counted and logged, and traversal continues.
func Run(cfg Config, logger *zap.Logger) (Summary, error) {
	var summary Summary
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	rootDir, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return summary, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	outputPath, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return summary, fmt.Errorf("failed to resolve output path: %w", err)
	}

	rootInfo, err := os.Stat(rootDir)
	if err != nil || !rootInfo.IsDir() {
		return summary, fmt.Errorf("root directory does not exist or is not a directory: %s", rootDir)
	}

	logger.Info("Starting aggregation",
		zap.String("rootDir", rootDir),
		zap.String("outputPath", outputPath),
		zap.Int64("maxFileSizeBytes", cfg.MaxFileSize))

	outFile, err := os.Create(outputPath)
	if err != nil {
		return summary, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Warn("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
		}
	}()
	out := bufio.NewWriter(outFile)

	// Relative paths already written by the workflow phase; the tree phase
	// passes over them without counting them again.
	emitted := make(map[string]bool)

	if cfg.IncludeWorkflows {
		runWorkflowPhase(rootDir, out, emitted, &summary, logger)
	}
	runTreePhase(cfg, rootDir, outputPath, out, emitted, &summary, logger)

	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("failed to flush output file %s: %w", outputPath, err)
	}

	logger.Info("Aggregation complete", zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// runWorkflowPhase emits the immediate .yml/.yaml children of
// .github/workflows, sorted by name, as GIT WORKFLOW records. A missing
// workflows directory is not an error.
func runWorkflowPhase(rootDir string, out *bufio.Writer, emitted map[string]bool, summary *Summary, logger *zap.Logger) {
	workflowsDir := filepath.Join(rootDir, filepath.FromSlash(workflowsSubdir))
	info, err := os.Stat(workflowsDir)
	if err != nil || !info.IsDir() {
		return
	}

	entries, err := os.ReadDir(workflowsDir)
	if err != nil {
		logger.Warn("Failed to list workflows directory", zap.String("dir", workflowsDir), zap.Error(err))
		return
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		workflowPath := filepath.Join(workflowsDir, name)
		raw, err := os.ReadFile(workflowPath)
		if err != nil {
			logger.Warn("Failed to read workflow", zap.String("file", workflowPath), zap.Error(err))
			summary.FilesFailed++
			continue
		}

		relPath := relativeTo(rootDir, workflowPath)
		writeRecord(out, recordKindWorkflow, relPath, DecodeLossy(raw))
		emitted[relPath] = true
		summary.WorkflowsIncluded++
	}
}

// runTreePhase walks the tree, pruning excluded directories before descent and
// classifying every file in each visited directory.
func runTreePhase(cfg Config, rootDir, outputPath string, out *bufio.Writer, emitted map[string]bool, summary *Summary, logger *zap.Logger) {
	walkTree(rootDir, func(dir string, subdirs, files []string) []string {
		logger.Info("Processing directory", zap.String("dir", relativeTo(rootDir, dir)))

		for _, name := range files {
			filePath := filepath.Join(dir, name)
			relPath := relativeTo(rootDir, filePath)
			if emitted[relPath] {
				continue
			}
			summary.FilesSeen++

			result, text, err := classifyFile(filePath, outputPath, cfg.MaxFileSize)
			switch result {
			case outcomeSkipSelf:
				logger.Debug("Skipping output file", zap.String("file", filePath))
			case outcomeSkipSize:
				summary.FilesSkippedSize++
				logger.Debug("Skipping large file", zap.String("file", filePath))
			case outcomeSkipBinary:
				summary.FilesSkippedBinary++
				logger.Debug("Skipping probable binary file", zap.String("file", filePath))
			case outcomeFail:
				summary.FilesFailed++
				logger.Warn("Failed to read file", zap.String("file", filePath), zap.Error(err))
			case outcomeAggregate:
				writeRecord(out, recordKindFile, relPath, text)
				summary.FilesAggregated++
			}
		}

		kept := make([]string, 0, len(subdirs))
		for _, name := range subdirs {
			if cfg.shouldDescend(name) {
				kept = append(kept, name)
			} else {
				logger.Debug("Pruning excluded directory", zap.String("dir", filepath.Join(dir, name)))
			}
		}
		return kept
	}, func(dir string, err error) {
		logger.Warn("Failed to read directory", zap.String("dir", dir), zap.Error(err))
	})
}

// writeRecord frames one file into the output stream: a 40-character separator
// line, the record kind and relative path, another separator, a blank line,
// the content, and a guaranteed trailing blank line. Write errors surface via
// the buffered writer's Flush.
func writeRecord(out *bufio.Writer, kind, relPath, content string) {
	out.WriteString(separatorLine + "\n")
	out.WriteString(kind + ": " + relPath + "\n")
	out.WriteString(separatorLine + "\n\n")
	out.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
}

// relativeTo renders path relative to rootDir with forward slashes, falling
// back to the path itself when no relative form exists.
func relativeTo(rootDir, path string) string {
	relPath, err := filepath.Rel(rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}
