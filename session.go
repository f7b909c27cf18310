package cubeview

import (
	"context"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeview/internal/ble"
	"github.com/SeamusWaldron/cubeview/internal/protocol"
	"github.com/google/uuid"
)

// Device represents a discovered smart cube, returned by Scan and
// accepted by Connect.
type Device struct {
	Name string // Device name (e.g., "GoCube_XXXX")
	UUID string // Device UUID for connection
	RSSI int16  // Signal strength in dBm
}

// Session is a live connection to a smart cube driving the full
// pipeline: notifications are decoded into tokens, applied to the
// logical state and queued on the animation engine. The session never
// manages rendering; consumers drive Engine().Tick from their frame
// loop and read the grid.
type Session struct {
	ID uuid.UUID

	client *ble.Client
	dec    *Decoder
	grid   *Grid
	engine *Engine
	state  *State

	mu      sync.RWMutex
	history []Move
	track   bool

	onMove   func(token string)
	onStatus func(status string)
}

// Scan discovers nearby smart cubes via Bluetooth Low Energy.
func Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, UUID: r.UUID, RSSI: r.RSSI}
	}
	return devices, nil
}

// Connect connects to a specific smart cube and starts the pipeline.
func Connect(ctx context.Context, device Device, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}

	grid := NewGrid()
	s := &Session{
		ID:     uuid.New(),
		client: client,
		dec:    NewDecoder(opts...),
		grid:   grid,
		engine: NewEngine(grid, opts...),
		state:  NewState(),
		track:  cfg.moveHistory,
	}

	client.SetNotificationCallback(s.handleNotification)
	client.SetStatusCallback(func(status string) {
		s.mu.RLock()
		cb := s.onStatus
		s.mu.RUnlock()
		if cb != nil {
			cb(status)
		}
	})

	if err := client.Connect(ctx, device.UUID); err != nil {
		return nil, err
	}

	return s, nil
}

// Dial scans for 10 seconds and connects to the first cube found.
// Convenience for single-cube setups; multi-device support is out of
// scope, so first-found is the only policy.
func Dial(ctx context.Context, opts ...Option) (*Session, error) {
	devices, err := Scan(ctx, 10*time.Second)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube.
func (s *Session) Close() error {
	return s.client.Disconnect()
}

// IsConnected returns true while the radio link is up.
func (s *Session) IsConnected() bool {
	return s.client.IsConnected()
}

// DeviceName returns the connected device name.
func (s *Session) DeviceName() string {
	return s.client.DeviceName()
}

// Grid returns the session's grid model for rendering.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Engine returns the session's animation engine. Drive Tick from the
// display frame loop.
func (s *Session) Engine() *Engine {
	return s.engine
}

// State returns the session's logical facelet state.
func (s *Session) State() *State {
	return s.state
}

// OnMove sets a callback fired for each decoded canonical token, in
// arrival order.
func (s *Session) OnMove(cb func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnStatus sets a callback for the connection status stream
// ("Disconnected", "Connecting", "Connected"). Radio errors surface
// here; the pipeline's internal state is unaffected by them.
func (s *Session) OnStatus(cb func(status string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = cb
}

// Moves returns the decoded move history since connection or last Reset.
func (s *Session) Moves() []Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// Reset snaps the whole pipeline back to solved: queued animations are
// discarded, the grid and logical state return to their initial
// positions, and history is cleared. The physical cube is unaffected.
func (s *Session) Reset() {
	s.engine.Reset()
	s.state.Reset()
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// FlashBacklight flashes the cube's backlight.
func (s *Session) FlashBacklight() error {
	return s.client.FlashBacklight()
}

// handleNotification runs the decode pipeline for one raw payload.
// Framed messages contribute their payload; unframed data is fed to the
// decoder as-is. Moves commit in the order their tokens were produced,
// within and across payloads; mid-animation arrivals are absorbed into
// the engine's queue.
func (s *Session) handleNotification(data []byte) {
	payload := data
	if msg, err := protocol.Parse(data); err == nil {
		switch msg.Type {
		case protocol.MsgTypeRotation, protocol.MsgTypeState:
			payload = msg.Payload
		default:
			// Battery, orientation and stats frames carry no moves.
			return
		}
	}

	now := time.Now()
	for _, token := range s.dec.Decode(payload) {
		// Per-token rejection: an extended or malformed token is
		// dropped here while the rest of the payload proceeds.
		if err := s.state.Apply(token); err != nil {
			continue
		}
		if err := s.engine.EnqueueNotation(token); err != nil {
			continue
		}

		s.mu.Lock()
		if s.track {
			if m, err := ParseMove(token); err == nil {
				s.history = append(s.history, m.WithTime(now))
			}
		}
		cb := s.onMove
		s.mu.Unlock()

		if cb != nil {
			cb(token)
		}
	}
}
