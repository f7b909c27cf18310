package cubeview

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job is one queued animation unit. Affected sub-cubes are selected when
// the job starts running, not when it is enqueued, because earlier
// commits move sub-cubes between layers.
type Job struct {
	ID       uuid.UUID
	Move     Move
	Start    time.Time
	Duration time.Duration

	affected []*SubCube
	started  bool
}

// Engine animates face turns on a Grid, one move at a time. Moves
// arriving while another runs are appended to a FIFO queue - never
// reordered, never merged, never an error. Progress is driven by Tick
// calls from the consumer's frame loop; the interpolated value is purely
// visual and the grid is mutated only at commit, so overlapping moves
// can never corrupt geometry.
//
// The commit step is the grid's only writer. The mutex keeps that
// exclusivity when ticks and enqueues come from different goroutines
// (BLE notifications land asynchronously, mid-animation included).
type Engine struct {
	mu       sync.Mutex
	grid     *Grid
	duration time.Duration

	current  *Job
	queue    []*Job
	progress float64 // eased visual progress of the current job

	onCommit   func(Move)
	onComplete func()
}

// NewEngine creates an animation engine owning the given grid.
func NewEngine(grid *Grid, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		grid:     grid,
		duration: cfg.moveDuration,
	}
}

// OnCommit sets a callback fired after each move's coordinate commit.
func (e *Engine) OnCommit(cb func(Move)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onCommit = cb
}

// OnComplete sets a callback fired when a commit drains the queue.
func (e *Engine) OnComplete(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = cb
}

// EnqueueNotation validates a canonical token and enqueues its move.
// Tokens that do not map to a known layer are rejected with an error and
// never enter the queue; the pipeline continues.
func (e *Engine) EnqueueNotation(token string) error {
	m, err := ParseMove(token)
	if err != nil {
		return err
	}
	return e.Enqueue(m)
}

// Enqueue adds a move to the animation queue. If the engine is idle the
// move begins on the next Tick; if a move is already running the new one
// waits its turn. A busy engine is normal operation, not an error.
func (e *Engine) Enqueue(m Move) error {
	if _, _, err := layerFor(m); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = append(e.queue, &Job{
		ID:       uuid.New(),
		Move:     m,
		Duration: e.duration,
	})
	return nil
}

// Tick advances the animation to the given instant. Call it once per
// display frame. It starts the next queued job when idle, updates the
// eased progress while running, and commits when the move's duration has
// elapsed; the next job starts in the same instant, with no idle gap.
func (e *Engine) Tick(now time.Time) {
	var commit func(Move)
	var complete func()
	var committed Move
	var didCommit, drained bool

	e.mu.Lock()

	if e.current == nil {
		e.startNext(now)
	}

	if job := e.current; job != nil && job.started {
		t := float64(now.Sub(job.Start)) / float64(job.Duration)
		if t >= 1 {
			e.commit(job)
			committed, didCommit = job.Move, true
			e.current = nil
			e.progress = 0
			e.startNext(now)
			drained = e.current == nil
		} else {
			if t < 0 {
				t = 0
			}
			e.progress = smoothstep(t)
		}
	}

	commit, complete = e.onCommit, e.onComplete
	e.mu.Unlock()

	// Callbacks fire outside the lock.
	if didCommit && commit != nil {
		commit(committed)
	}
	if didCommit && drained && complete != nil {
		complete()
	}
}

// startNext dequeues and starts the next job, selecting the affected
// sub-cubes from the move's layer. Caller holds the mutex.
func (e *Engine) startNext(now time.Time) {
	for len(e.queue) > 0 {
		job := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]

		spec, _, err := layerFor(job.Move)
		if err != nil {
			continue // validated at enqueue; kept as a guard
		}
		affected := e.grid.Layer(spec.axis, spec.value)
		if len(affected) != 9 {
			// Coordinate mismatch: the bijection invariant would not
			// survive a partial layer. Abort the job rather than commit
			// broken geometry.
			continue
		}

		job.affected = affected
		job.Start = now
		job.started = true
		e.current = job
		e.progress = 0
		return
	}
	e.current = nil
}

// commit bakes the finished move into the grid: each affected sub-cube's
// coordinate and facet normals go through the axis rotation, and the
// visual transform returns to neutral. Rotation is baked into position
// rather than accumulated, so long move sequences cannot drift.
// Caller holds the mutex.
func (e *Engine) commit(job *Job) {
	spec, turns, err := layerFor(job.Move)
	if err != nil {
		return
	}
	for t := 0; t < turns; t++ {
		for _, sc := range job.affected {
			sc.rotate(spec.axis, spec.dir)
		}
	}
}

// Reset discards all queued moves, aborts the running one without
// finishing it, and snaps every sub-cube home. The only cancellation
// primitive.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = nil
	e.queue = nil
	e.progress = 0
	e.grid.Reset()
}

// Frame is a read-only snapshot for the renderer.
type Frame struct {
	Active   bool    // a move is running
	Move     Move    // the running move (zero when idle)
	Progress float64 // eased progress in [0,1], visual only
	Queued   int     // moves waiting behind the running one
}

// Frame returns the current animation snapshot.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := Frame{Queued: len(e.queue)}
	if e.current != nil {
		f.Active = true
		f.Move = e.current.Move
		f.Progress = e.progress
	}
	return f
}

// Idle reports whether nothing is running and the queue is empty.
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current == nil && len(e.queue) == 0
}

// smoothstep is the ease curve t^2(3-2t): zero velocity at both ends.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
