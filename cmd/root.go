package cmd

import (
	"os"
	"strings"

	"github.com/ioccc-src/submitcheck/pkg/logger"
	"github.com/spf13/cobra"
)

// generalErrorExitCode is used for failures outside the cpath sanity-code
// taxonomy in pkg/exitcode (command parsing, logger setup, I/O errors).
const generalErrorExitCode = 1

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "submitcheck",
	Short: "Canonicalize paths and validate IOCCC submission metadata",
	Long: `submitcheck canonicalizes submission paths and validates IOCCC
submission metadata — author objects, manifest arrays, and the filesystem
layout they describe — against the contest's declarative rules.

Examples:
   submitcheck cpath a//b/./c         # canonicalize a path, print it, exit with its sanity code
   submitcheck validate .             # validate a submission directory's .info.json / .auth.json
   submitcheck verge 1.2 1.2.0        # compare two tool versions`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initializeLogger(cmd)
	},
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command execution failed", logger.Err(err))
		os.Exit(generalErrorExitCode)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("policy", "", "Path to a policy config file (TOML/YAML/JSON)")
	rootCmd.SetVersionTemplate("submitcheck {{.Version}}\n")
}

func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	var logLevel logger.Level
	switch strings.ToLower(logLevelStr) {
	case "trace":
		logLevel = logger.TraceLevel
	case "debug":
		logLevel = logger.DebugLevel
	case "warn":
		logLevel = logger.WarnLevel
	case "error":
		logLevel = logger.ErrorLevel
	default:
		logLevel = logger.InfoLevel
	}

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "submitcheck",
	}
	if err := logger.Initialize(config); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(generalErrorExitCode)
	}
}
