package cmd

import (
	"fmt"
	"os"

	"github.com/ioccc-src/submitcheck/pkg/canonpath"
	"github.com/spf13/cobra"
)

var (
	cpathOnlyRelative   bool
	cpathAnyCase        bool
	cpathSafeChk        bool
	cpathMaxPathLen     int
	cpathMaxFilenameLen int
	cpathMaxDepth       int
)

var cpathCmd = &cobra.Command{
	Use:   "cpath <path>",
	Short: "Canonicalize a path and report its sanity code",
	Long: `cpath normalizes a raw path string under the given policy flags,
prints the canonical path to stdout, and exits with the sanity code's
mapped CLI exit code (0 on success; see the exit code table in the design
notes for the failure codes).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]
		policy := canonpath.Policy{
			OnlyRelative:   cpathOnlyRelative,
			AnyCase:        cpathAnyCase,
			SafeChk:        cpathSafeChk,
			MaxPathLen:     cpathMaxPathLen,
			MaxFilenameLen: cpathMaxFilenameLen,
			MaxDepth:       cpathMaxDepth,
		}
		result := canonpath.Canonicalize(&input, policy)
		if result.Sanity == canonpath.OK {
			fmt.Println(result.Path)
		} else {
			fmt.Fprintf(os.Stderr, "cpath: %s\n", result.Sanity)
		}
		os.Exit(result.Sanity.ExitCode())
	},
}

func init() {
	cpathCmd.Flags().BoolVar(&cpathOnlyRelative, "only-relative", false, "reject absolute paths")
	cpathCmd.Flags().BoolVar(&cpathAnyCase, "any-case", false, "preserve case instead of folding to lowercase")
	cpathCmd.Flags().BoolVar(&cpathSafeChk, "safe-check", false, "reject components outside the POSIX-safe charset")
	cpathCmd.Flags().IntVar(&cpathMaxPathLen, "max-path-len", 0, "maximum canonical path length (0 = unbounded)")
	cpathCmd.Flags().IntVar(&cpathMaxFilenameLen, "max-filename-len", 0, "maximum path component length (0 = unbounded)")
	cpathCmd.Flags().IntVar(&cpathMaxDepth, "max-depth", 0, "maximum path depth (0 = unbounded)")
	rootCmd.AddCommand(cpathCmd)
}
