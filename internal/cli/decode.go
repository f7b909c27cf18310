package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeview"
	"github.com/spf13/cobra"
)

var decodeAsText bool

// decodeCmd feeds one payload through the decoder heuristics, printing
// the winning strategy. Handy when poking at an unknown firmware.
var decodeCmd = &cobra.Command{
	Use:   "decode <payload>",
	Short: "Decode a notification payload into move tokens",
	Long: `Decode one raw notification payload into canonical move tokens.

The payload is given as hex bytes (e.g. "00 07 0b") unless --text is
set, in which case the argument is used verbatim.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload []byte
		if decodeAsText {
			payload = []byte(strings.Join(args, " "))
		} else {
			clean := strings.NewReplacer(" ", "", "0x", "", ",", "").Replace(strings.Join(args, ""))
			var err error
			payload, err = hex.DecodeString(clean)
			if err != nil {
				return fmt.Errorf("invalid hex payload: %w", err)
			}
		}

		for _, s := range cubeview.DefaultStrategies() {
			tokens, ok := s.Decode(payload)
			if !ok {
				if verbose {
					fmt.Printf("  %-14s no match\n", s.Name)
				}
				continue
			}
			fmt.Printf("strategy: %s\n", s.Name)
			fmt.Printf("tokens:   %s\n", strings.Join(tokens, " "))
			return nil
		}

		fmt.Println("payload matched no strategy")
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeAsText, "text", false, "Treat the argument as literal text, not hex")
	rootCmd.AddCommand(decodeCmd)
}
