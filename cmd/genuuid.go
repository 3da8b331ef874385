package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ioccc-src/submitcheck/pkg/domain"
	"github.com/spf13/cobra"
)

var genUUIDCmd = &cobra.Command{
	Use:   "gen-uuid",
	Short: "Generate a random contest UUID",
	Long: `gen-uuid generates a random RFC 4122 version-4 UUID and prints it
lower-cased, the form IsContestUUID accepts. google/uuid's NewRandom always
sets the variant nibble to one of 8/9/a/b, so its output is contest-UUID
shaped by construction; this command still validates before printing as a
safeguard against a future library change silently breaking that guarantee.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("gen-uuid: %w", err)
		}
		s := strings.ToLower(id.String())
		if !domain.IsContestUUID(s) {
			return fmt.Errorf("gen-uuid: generated UUID %q is not contest-UUID shaped", s)
		}
		fmt.Println(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genUUIDCmd)
}
