// Package cli implements the command-line interface for cubeview.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	verbose      bool
	moveDuration int // milliseconds
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeview",
	Short: "Smart cube viewer",
	Long: `cubeview - drive a virtual 3x3x3 cube from a GoCube smart cube.

Connect over Bluetooth and watch the virtual cube follow the physical
one, or run standalone and type moves at the keyboard. Payload decoding
tolerates the known firmware encodings; unknown payloads are dropped,
never fatal.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().IntVar(&moveDuration, "move-ms", 200, "Animation duration per move in milliseconds")
}
