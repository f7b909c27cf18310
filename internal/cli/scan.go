package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeview"
	"github.com/spf13/cobra"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for nearby smart cubes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		fmt.Printf("Scanning for %s...\n", scanTimeout)
		devices, err := cubeview.Scan(ctx, scanTimeout)
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Println("No cubes found. Make sure the cube is awake and not paired elsewhere.")
			return nil
		}

		for _, d := range devices {
			fmt.Printf("  %-20s %s (RSSI %d)\n", d.Name, d.UUID, d.RSSI)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Second, "Scan duration")
	rootCmd.AddCommand(scanCmd)
}
