package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/slgem/slgem/events"
)

// LoopConfig holds the game loop timing configuration
type LoopConfig struct {
	// TargetFPS is the target frame rate; derives the fixed simulation step
	TargetFPS uint
	// MaxUpdates caps catch-up updates per second after a wall-clock stall
	MaxUpdates uint
}

// DefaultLoopConfig returns the standard 60 FPS configuration
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TargetFPS:  60,
		MaxUpdates: 60,
	}
}

// Validate rejects configurations that would divide by zero or stall the loop
func (c LoopConfig) Validate() error {
	if c.TargetFPS == 0 {
		return fmt.Errorf("loop config: target fps must be positive")
	}
	if c.MaxUpdates == 0 {
		return fmt.Errorf("loop config: max updates must be positive")
	}
	return nil
}

// FrameDuration returns the fixed simulation step size (1 / TargetFPS)
func (c LoopConfig) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.TargetFPS)
}

// Renderer is the outbound rendering collaborator.
// Called once per frame after all due updates; an error is fatal to the run
type Renderer interface {
	Render() error
}

// GameLoop drives fixed-timestep simulation updates from a subscriber queue.
//
// Run blocks on the queue while idle and advances simulated time in fixed
// increments decoupled from wall-clock frame variance. A High-priority Stop is
// the only priority-sensitive branch: it short-circuits the current drain and
// terminates the run after the frame in flight. All state except the
// subscription is owned by the goroutine calling Run
type GameLoop struct {
	cfg    LoopConfig
	sub    *events.Subscription
	router *Router

	renderer     Renderer
	timeProvider TimeProvider
	log          zerolog.Logger

	frameDuration time.Duration
	maxStep       time.Duration
	lastUpdate    time.Time
	accumulated   time.Duration
	stopped       bool

	// Fixed-step counter for debugging and metrics
	updateCount uint64
}

// UpdateCount returns the number of fixed simulation steps executed so far.
// Only meaningful from the goroutine running the loop
func (gl *GameLoop) UpdateCount() uint64 {
	return gl.updateCount
}

// NewGameLoop creates a loop consuming events from sub
func NewGameLoop(cfg LoopConfig, sub *events.Subscription) (*GameLoop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GameLoop{
		cfg:           cfg,
		sub:           sub,
		router:        NewRouter(),
		timeProvider:  NewMonotonicTimeProvider(),
		log:           zerolog.Nop(),
		frameDuration: cfg.FrameDuration(),
		maxStep:       time.Second / time.Duration(cfg.MaxUpdates),
	}, nil
}

// RegisterHandler adds an event handler to the router, must be called before Run
func (gl *GameLoop) RegisterHandler(h Handler) {
	gl.router.Register(h)
}

// SetRenderer sets the rendering collaborator, must be called before Run.
// Without a renderer the render phase is a no-op
func (gl *GameLoop) SetRenderer(r Renderer) {
	gl.renderer = r
}

// SetTimeProvider replaces the wall clock, must be called before Run
func (gl *GameLoop) SetTimeProvider(tp TimeProvider) {
	gl.timeProvider = tp
}

// SetLogger sets the loop's logger
func (gl *GameLoop) SetLogger(l zerolog.Logger) {
	gl.log = l
}

// Close releases the loop's event subscription. Publishers blocked on a
// full queue unblock with a delivery error
func (gl *GameLoop) Close() {
	gl.sub.Close()
}

// Run executes the loop until a High-priority Stop arrives, the subscription
// is closed (both graceful, nil return), or a handler or render failure occurs
func (gl *GameLoop) Run() error {
	gl.log.Info().
		Uint("target_fps", gl.cfg.TargetFPS).
		Uint("max_updates", gl.cfg.MaxUpdates).
		Msg("starting game loop")

	gl.lastUpdate = gl.timeProvider.Now()

	for {
		pe, ok := gl.sub.Recv()
		if !ok {
			// Closed queue is a graceful stream end
			gl.log.Info().Msg("event queue closed, stopping game loop")
			return nil
		}

		if isStopSignal(pe) {
			gl.log.Info().Msg("stopping game loop")
			return nil
		}

		if err := gl.dispatch(pe); err != nil {
			return err
		}

		if err := gl.processFrame(); err != nil {
			return err
		}

		if gl.stopped {
			gl.log.Info().Msg("stopping game loop")
			return nil
		}
	}
}

// processFrame advances the accumulator and runs due fixed-step updates,
// then renders once
func (gl *GameLoop) processFrame() error {
	now := gl.timeProvider.Now()
	frameTime := now.Sub(gl.lastUpdate)
	gl.lastUpdate = now

	// Clamp how much simulated time one slow frame can inject, so a stall
	// never triggers an unbounded burst of catch-up updates
	if frameTime > gl.maxStep {
		frameTime = gl.maxStep
	}
	gl.accumulated += frameTime

	for gl.accumulated >= gl.frameDuration && !gl.stopped {
		if err := gl.update(); err != nil {
			return err
		}
		gl.accumulated -= gl.frameDuration
		gl.updateCount++
	}

	return gl.render()
}

// update drains the queue without blocking and dispatches each event.
// A High-priority Stop ends the drain early and flags the run loop to
// terminate after the current frame
func (gl *GameLoop) update() error {
	for {
		pe, ok := gl.sub.TryRecv()
		if !ok {
			return nil
		}

		if isStopSignal(pe) {
			gl.stopped = true
			return nil
		}

		if err := gl.dispatch(pe); err != nil {
			return err
		}
	}
}

// dispatch hands one drained event to its registered handlers
func (gl *GameLoop) dispatch(pe events.PrioritizedEvent) error {
	if pe.Event.Type == events.EventUpdate {
		if payload, ok := pe.Event.Payload.(*events.UpdatePayload); ok {
			gl.log.Debug().Float64("delta_ms", payload.Delta*1000).Msg("update frame")
		}
	}

	if err := gl.router.Dispatch(pe); err != nil {
		return fmt.Errorf("handler for %s event: %w", pe.Event.Type, err)
	}
	return nil
}

// render invokes the rendering collaborator once per frame.
// Failures are engine-fatal; there is no retry at this layer
func (gl *GameLoop) render() error {
	if gl.renderer == nil {
		return nil
	}
	if err := gl.renderer.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// isStopSignal reports whether pe is the High-priority Stop that
// short-circuits the loop. A Stop at lower priority is ordinary traffic
func isStopSignal(pe events.PrioritizedEvent) bool {
	return pe.Event.Type == events.EventStop && pe.Priority == events.PriorityHigh
}
