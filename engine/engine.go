package engine

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/slgem/slgem/events"
)

// Engine owns the event bus and the engine lifecycle.
//
// Start and Stop publish lifecycle events on events.TopicEngine at their
// default (High) priority; the running flag exists for external observability
// only and takes no part in scheduling decisions
type Engine struct {
	bus     *events.Bus
	running atomic.Bool
	log     zerolog.Logger
}

// New creates an engine with a fresh bus
func New() *Engine {
	return &Engine{
		bus: events.NewBus(),
		log: zerolog.Nop(),
	}
}

// SetLogger sets the engine's logger
func (e *Engine) SetLogger(l zerolog.Logger) {
	e.log = l
}

// Bus returns the engine's event bus for publishing and subscribing
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// Running reports whether Start was called more recently than Stop
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Start publishes the Start lifecycle event and marks the engine running
func (e *Engine) Start() error {
	e.running.Store(true)
	err := e.bus.Publish(events.TopicEngine, events.Event{Type: events.EventStart})
	if err != nil {
		return err
	}
	e.log.Info().Msg("engine started")
	return nil
}

// Stop publishes the Stop lifecycle event and marks the engine stopped.
// The Stop's default High priority makes a running game loop terminate
func (e *Engine) Stop() error {
	e.running.Store(false)
	err := e.bus.Publish(events.TopicEngine, events.Event{Type: events.EventStop})
	if err != nil {
		return err
	}
	e.log.Info().Msg("engine stopped")
	return nil
}

// NewLoop subscribes a fresh queue on the engine topic and builds a game loop
// consuming it, inheriting the engine's logger
func (e *Engine) NewLoop(cfg LoopConfig) (*GameLoop, error) {
	sub := e.bus.Subscribe(events.TopicEngine)
	gl, err := NewGameLoop(cfg, sub)
	if err != nil {
		sub.Close()
		return nil, err
	}
	gl.SetLogger(e.log)
	return gl, nil
}
