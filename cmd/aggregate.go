// File: cmd/aggregate.go
package cmd

import (
	"fmt"
	"strings"

	"textpack/pkg/aggregate"
	"textpack/pkg/logging"
	"textpack/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// aggregateCmd is the main verb: flatten a project tree into one file.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate <root-dir> [output-path]",
	Short: "Aggregate a project's text files into one output file",
	Long: `Aggregate recursively walks <root-dir> and writes every probably-textual
file into a single output file. If the output path is omitted, a file named
'<root-dir-basename>.txt' is created in the current directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAggregate,
}

func init() {
	flags := aggregateCmd.Flags()
	flags.Float64("max-size-mb", aggregate.DefaultMaxFileSizeMB, "Maximum file size in MB to include")
	flags.Bool("no-workflows", false, "Do not include files from .github/workflows in the output")
	flags.StringSlice("exclude-dir", nil, "Directory names to prune (replaces the default exclusion set)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("config", "", "Path to a config file")

	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix("TEXTPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	log := logger
	if v.GetBool("debug") {
		debugLogger, err := logging.New(true, "textpack", version.Version)
		if err != nil {
			return fmt.Errorf("failed to initialize debug logger: %w", err)
		}
		defer debugLogger.Sync()
		log = debugLogger
	}

	rootDir := args[0]
	var outputPath string
	if len(args) == 2 {
		outputPath = args[1]
	} else {
		outputPath = aggregate.DefaultOutputPath(rootDir)
	}

	cfg := aggregate.Config{
		RootDir:          rootDir,
		OutputPath:       outputPath,
		MaxFileSize:      aggregate.MaxBytesFromMB(v.GetFloat64("max-size-mb")),
		IncludeWorkflows: !v.GetBool("no-workflows"),
		SkipDirs:         aggregate.DefaultSkipDirs(),
	}
	if excludes := v.GetStringSlice("exclude-dir"); len(excludes) > 0 {
		cfg.SkipDirs = make(map[string]bool, len(excludes))
		for _, name := range excludes {
			cfg.SkipDirs[name] = true
		}
	}

	summary, err := aggregate.Run(cfg, log)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Int("filesSeen", summary.FilesSeen),
		zap.Int("filesAggregated", summary.FilesAggregated),
		zap.Int("filesSkippedSize", summary.FilesSkippedSize),
		zap.Int("filesSkippedBinary", summary.FilesSkippedBinary),
		zap.Int("filesFailed", summary.FilesFailed),
		zap.String("outputPath", outputPath),
	}
	if cfg.IncludeWorkflows {
		fields = append(fields, zap.Int("workflowsIncluded", summary.WorkflowsIncluded))
	}
	log.Info("Aggregation summary", fields...)
	return nil
}
