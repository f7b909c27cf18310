package cubeview

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeview/internal/protocol"
	"github.com/google/uuid"
)

// newTestSession builds a session around the pipeline only, with no
// radio client. handleNotification never touches the client, so framed
// and raw payloads can be pushed straight through it.
func newTestSession() *Session {
	grid := NewGrid()
	return &Session{
		ID:     uuid.New(),
		dec:    NewDecoder(),
		grid:   grid,
		engine: NewEngine(grid, WithMoveDuration(10*time.Millisecond)),
		state:  NewState(),
		track:  true,
	}
}

// frame wraps a payload in the wire framing handleNotification expects.
func frame(msgType byte, payload []byte) []byte {
	data := []byte{protocol.FramePrefix, byte(len(payload) + 4), msgType}
	data = append(data, payload...)
	var checksum byte
	for _, b := range data {
		checksum += b
	}
	return append(data, checksum, protocol.FrameSuffix1, protocol.FrameSuffix2)
}

func drain(e *Engine) {
	now := time.Unix(0, 0)
	for !e.Idle() {
		e.Tick(now)
		now = now.Add(10 * time.Millisecond)
	}
}

func TestSessionAppliesFramedRotation(t *testing.T) {
	s := newTestSession()

	s.handleNotification(frame(protocol.MsgTypeRotation, []byte{1})) // R

	if s.state.IsSolved() {
		t.Error("rotation notification should mutate the logical state")
	}
	drain(s.engine)
	if s.grid.Serialize() != s.state.Serialize() {
		t.Error("grid and state diverged after a notification")
	}

	moves := s.Moves()
	if len(moves) != 1 || moves[0].Notation() != "R" {
		t.Errorf("Moves() = %v, want [R]", moves)
	}
}

func TestSessionAppliesUnframedPayload(t *testing.T) {
	// Not every firmware frames its notifications; raw payloads go to
	// the decoder as-is.
	s := newTestSession()

	s.handleNotification([]byte("R U R' U'"))
	drain(s.engine)

	if got := FormatMoves(s.Moves()); got != "R U R' U'" {
		t.Errorf("Moves() = %q, want \"R U R' U'\"", got)
	}
	if s.grid.Serialize() != s.state.Serialize() {
		t.Error("grid and state diverged")
	}
}

func TestSessionIgnoresNonMoveFrames(t *testing.T) {
	s := newTestSession()

	s.handleNotification(frame(protocol.MsgTypeBattery, []byte{87}))
	s.handleNotification(frame(protocol.MsgTypeOrientation, []byte{3, 1, 4}))

	if !s.state.IsSolved() {
		t.Error("battery and orientation frames must not produce moves")
	}
	if len(s.Moves()) != 0 {
		t.Errorf("Moves() = %v, want empty", s.Moves())
	}
}

func TestSessionSurvivesMalformedFrames(t *testing.T) {
	// Malformed radio payloads are dropped, never fatal. The second
	// payload is framing-consistent but too short to carry a type byte.
	s := newTestSession()

	s.handleNotification(nil)
	s.handleNotification([]byte{protocol.FramePrefix, 0x03, 0x2D, protocol.FrameSuffix1, protocol.FrameSuffix2})
	s.handleNotification([]byte{protocol.FramePrefix, 0xFF, 0x00})

	if !s.state.IsSolved() {
		t.Error("malformed frames must not produce moves")
	}
	if len(s.Moves()) != 0 {
		t.Errorf("Moves() = %v, want empty", s.Moves())
	}
}

func TestSessionDropsRejectedTokensIndividually(t *testing.T) {
	// Extended tokens decode as text but do not map to a layer; each is
	// dropped on its own while the rest of the payload proceeds.
	s := newTestSession()

	s.handleNotification([]byte("R M U"))

	if got := FormatMoves(s.Moves()); got != "R U" {
		t.Errorf("Moves() = %q, want \"R U\"", got)
	}
}

func TestSessionOnMoveOrdering(t *testing.T) {
	s := newTestSession()

	var seen []string
	s.OnMove(func(tok string) { seen = append(seen, tok) })

	s.handleNotification([]byte{1, 0}) // R U
	s.handleNotification([]byte{7})    // R'

	want := []string{"R", "U", "R'"}
	if len(seen) != len(want) {
		t.Fatalf("OnMove saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("OnMove saw %v, want %v", seen, want)
		}
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession()

	s.handleNotification([]byte("R U F2"))
	s.Reset()

	if !s.state.IsSolved() {
		t.Error("Reset should restore the logical state")
	}
	if s.grid.Serialize() != solvedSerialized {
		t.Error("Reset should restore the grid")
	}
	if len(s.Moves()) != 0 {
		t.Error("Reset should clear the move history")
	}
	if !s.engine.Idle() {
		t.Error("Reset should drain the animation queue")
	}
}

func TestSessionHistoryDisabled(t *testing.T) {
	s := newTestSession()
	s.track = false

	s.handleNotification([]byte("R U"))

	if len(s.Moves()) != 0 {
		t.Errorf("Moves() with history disabled = %v, want empty", s.Moves())
	}
	if s.state.IsSolved() {
		t.Error("disabling history must not disable the pipeline")
	}
}
