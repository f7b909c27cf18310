// Package cubeview drives a virtual 3x3x3 cube from a GoCube smart cube.
//
// Raw BLE notifications from the cube are decoded into canonical move
// tokens, which update both a logical facelet state and an animated 3D
// grid of sub-cubes. The package works standalone without hardware: feed
// payloads to a Decoder, or tokens straight to the Engine and State.
//
// # Pipeline
//
//	payload -> Decoder -> tokens -> State.Apply + Engine.EnqueueNotation
//	        -> Grid committed per move -> completion callback
//
// # Quick Start
//
// Decode a notification and animate the resulting moves:
//
//	grid := cubeview.NewGrid()
//	engine := cubeview.NewEngine(grid)
//	state := cubeview.NewState()
//
//	dec := cubeview.NewDecoder()
//	for _, tok := range dec.Decode(payload) {
//	    state.Apply(tok)
//	    engine.EnqueueNotation(tok)
//	}
//
//	// Drive the animation from your frame loop:
//	engine.Tick(time.Now())
//
// # Live Sessions
//
// Session wires the BLE transport to the pipeline:
//
//	sess, err := cubeview.Dial(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	sess.OnMove(func(tok string) {
//	    fmt.Println("Move:", tok)
//	})
//
// # Canonical Tokens
//
// The only string format crossing component boundaries is the canonical
// move token: an uppercase face letter U/D/L/R/F/B optionally followed by
// ' (counter-clockwise) or 2 (half turn). Decoders may emit extended
// tokens (M, E, S, x, y, z) which the engine and state reject per token.
package cubeview
