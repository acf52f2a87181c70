package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is shared by all subcommands; it is set once by Execute.
var logger *zap.Logger

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "textpack",
	Short: "textpack flattens a project tree into a single text file",
	Long: `textpack walks a project directory and aggregates every probably-textual
file into one output file, each preceded by a path header, skipping
dependency, build, and VCS directories as well as oversized and binary files.`,
}

// Execute wires the shared logger into the command tree and runs it.
func Execute(l *zap.Logger) error {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	return rootCmd.Execute()
}
