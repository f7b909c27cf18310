// Command cubeview shows an animated virtual cube driven by a GoCube
// smart cube, or by keyboard input in standalone mode.
package main

import "github.com/SeamusWaldron/cubeview/internal/cli"

func main() {
	cli.Execute()
}
