package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubeview"
	"github.com/SeamusWaldron/cubeview/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	viewSimulate string
	viewDevice   string
)

// viewCmd runs the interactive viewer, fed by a live BLE session or, in
// standalone mode, by keyboard entry plus an optional scripted scramble.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the animated virtual cube",
	Long: `Show the animated virtual cube in the terminal.

With --device (or a successful scan), moves from the physical cube drive
the animation. With --simulate, the given move sequence plays without
hardware. In either mode moves can be typed at the keyboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		duration := cubeview.WithMoveDuration(time.Duration(moveDuration) * time.Millisecond)

		if viewSimulate != "" {
			return runStandalone(viewSimulate, duration)
		}
		return runConnected(ctx, duration)
	},
}

// runStandalone runs the viewer without hardware, feeding the scripted
// moves through the same token channel a session would use.
func runStandalone(script string, opts ...cubeview.Option) error {
	grid := cubeview.NewGrid()
	engine := cubeview.NewEngine(grid, opts...)
	state := cubeview.NewState()

	tokens := make(chan string)
	go func() {
		defer close(tokens)
		for _, m := range cubeview.ParseMoves(script) {
			tokens <- m.Notation()
			time.Sleep(150 * time.Millisecond)
		}
	}()

	model := tui.New(grid, engine, state, tokens, nil, true)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// runConnected dials a cube and bridges its callbacks onto the viewer's
// channels.
func runConnected(ctx context.Context, opts ...cubeview.Option) error {
	var sess *cubeview.Session
	var err error

	if viewDevice != "" {
		sess, err = cubeview.Connect(ctx, cubeview.Device{UUID: viewDevice}, opts...)
	} else {
		fmt.Println("Scanning for a cube...")
		sess, err = cubeview.Dial(ctx, opts...)
	}
	if err != nil {
		return err
	}
	defer sess.Close()

	tokens := make(chan string, 64)
	status := make(chan string, 8)
	sess.OnMove(func(tok string) {
		select {
		case tokens <- tok:
		default: // never block the radio callback
		}
	})
	sess.OnStatus(func(st string) {
		select {
		case status <- st:
		default:
		}
	})

	model := tui.New(sess.Grid(), sess.Engine(), sess.State(), tokens, status, false)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func init() {
	viewCmd.Flags().StringVar(&viewSimulate, "simulate", "", "Play a move sequence without hardware (e.g. \"R U R' U'\")")
	viewCmd.Flags().StringVar(&viewDevice, "device", "", "Connect to a specific device UUID")
	rootCmd.AddCommand(viewCmd)
}
