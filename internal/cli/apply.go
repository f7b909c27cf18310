package cli

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeview"
	"github.com/spf13/cobra"
)

// applyCmd applies a move sequence to a fresh logical state and prints
// the serialized result. No animation, no hardware.
var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply move notation and print the resulting state",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := cubeview.NewState()

		var rejected []string
		for _, tok := range strings.Fields(strings.Join(args, " ")) {
			tok = cubeview.Normalize(tok)
			if err := state.Apply(tok); err != nil {
				rejected = append(rejected, tok)
			}
		}

		fmt.Println(state.String())
		fmt.Printf("state:  %s\n", state.Serialize())
		fmt.Printf("solved: %v\n", state.IsSolved())
		if len(rejected) > 0 {
			fmt.Printf("rejected tokens: %s\n", strings.Join(rejected, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
