// Package core provides the event-driven driver for the pipeline
// simulator. It schedules one tick event per cycle on an Akita serial
// engine, so the cycle clock is owned by the simulation framework while
// the pipeline model stays a plain deterministic state machine.
package core

import (
	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/pipesim/timing/pipeline"
)

// Core drives a pipeline simulator with tick events on an event engine.
// Event-driven and loop-driven execution produce identical results; the
// serial engine processes one event per cycle in timestamp order.
type Core struct {
	id     string
	freq   sim.Freq
	engine sim.Engine
	pipe   *pipeline.Simulator
}

// tickEvent advances the pipeline by one cycle.
type tickEvent struct {
	*sim.EventBase
}

// NewCore creates a core around the given simulator, clocked at 1 GHz on
// a serial engine.
func NewCore(pipe *pipeline.Simulator) *Core {
	return &Core{
		id:     xid.New().String(),
		freq:   1 * sim.GHz,
		engine: sim.NewSerialEngine(),
		pipe:   pipe,
	}
}

// ID returns the core's identifier. It is used for diagnostics only and
// never appears in run results.
func (c *Core) ID() string {
	return c.id
}

// Simulator returns the wrapped pipeline simulator.
func (c *Core) Simulator() *pipeline.Simulator {
	return c.pipe
}

// Handle processes one tick event and schedules the next one until the
// simulation reaches its terminal condition.
func (c *Core) Handle(e sim.Event) error {
	c.pipe.Tick()
	if !c.pipe.Done() {
		next := tickEvent{sim.NewEventBase(e.Time()+c.freq.Period(), c)}
		c.engine.Schedule(next)
	}
	return nil
}

// Run drives the simulator to its terminal condition on the event engine
// and returns the run result.
func (c *Core) Run() (*pipeline.Result, error) {
	if !c.pipe.Done() {
		first := tickEvent{sim.NewEventBase(c.freq.Period(), c)}
		c.engine.Schedule(first)
		if err := c.engine.Run(); err != nil {
			return nil, err
		}
	}
	return c.pipe.Result(), nil
}
