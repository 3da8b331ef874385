package cmd

import (
	"fmt"
	"os"

	"github.com/ioccc-src/submitcheck/pkg/versioning"
	"github.com/spf13/cobra"
)

var vergeCmd = &cobra.Command{
	Use:   "verge <version-a> <version-b>",
	Short: "Compare two dot-separated version strings",
	Long: `verge compares two versions as dot-separated non-negative integer
tuples (leading non-digit characters are trimmed first); unlike calver, a
shorter tuple that is a prefix of a longer one compares as less — "1.2" is
less than "1.2.0".`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cmp, err := versioning.Compare(args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "verge: %v\n", err)
			os.Exit(1)
		}
		switch cmp {
		case versioning.ComparisonLess:
			fmt.Printf("%s < %s\n", args[0], args[1])
		case versioning.ComparisonEqual:
			fmt.Printf("%s == %s\n", args[0], args[1])
		case versioning.ComparisonGreater:
			fmt.Printf("%s > %s\n", args[0], args[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(vergeCmd)
}
