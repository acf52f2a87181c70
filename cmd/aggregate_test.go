package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return Execute(zap.NewNop())
}

func TestAggregateCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello\n"), 0o644))
	output := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, runCommand(t, "aggregate", root, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FILE: hello.txt")
}

func TestAggregateCommandExcludeDirOverride(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "dep.txt"), []byte("dep\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "mod.txt"), []byte("mod\n"), 0o644))
	output := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, runCommand(t, "aggregate", root, output, "--exclude-dir", "vendor"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	// The override replaces the default set: vendor is pruned, node_modules is not.
	assert.NotContains(t, string(data), "dep.txt")
	assert.Contains(t, string(data), "node_modules/mod.txt")
}

func TestAggregateCommandInvalidRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	output := filepath.Join(t.TempDir(), "out.txt")

	err := runCommand(t, "aggregate", missing, output, "--exclude-dir", "")
	require.Error(t, err)
}
