// Package pipeline implements the cycle-level model of a 5-stage
// superscalar out-of-order pipeline.
//
// Stages: FETCH -> DECODE -> ISSUE -> EXECUTE -> WRITEBACK. Data hazards
// are enforced by a register scoreboard, structural hazards by a bounded
// execution-unit pool. The simulation is sequential and deterministic:
// the same program yields the same trace on every run and platform.
package pipeline

import (
	"fmt"

	"github.com/sarchlab/pipesim/insts"
	"github.com/sarchlab/pipesim/timing/latency"
)

// DefaultMaxCycles is the safety ceiling for a run. A run that has not
// retired every instruction by then stops and reports what it has.
const DefaultMaxCycles = 500

// Option is a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLatencyTable sets a custom latency table for instruction timing.
func WithLatencyTable(table *latency.Table) Option {
	return func(sim *Simulator) {
		sim.latencies = table
	}
}

// WithMaxCycles overrides the cycle safety ceiling.
func WithMaxCycles(n int) Option {
	return func(sim *Simulator) {
		sim.maxCycles = n
	}
}

// Simulator drives a program through the pipeline one cycle at a time and
// records a snapshot per cycle.
//
// Each tick runs a fixed phase sequence: pool reset, WRITEBACK, EXECUTE,
// ISSUE, DECODE, FETCH, snapshot. The ordering is load-bearing: resetting
// the pool first makes a unit retired this tick available to ISSUE in the
// same tick, and processing the stages back to front propagates bubbles
// backward within a single tick. ISSUE and DECODE walk instructions in
// ascending id order, which is the priority rule for scarce units.
type Simulator struct {
	program []insts.Instruction
	states  []instState

	scoreboard *Scoreboard
	units      *UnitPool
	latencies  *latency.Table

	maxCycles int
	cycle     int
	completed int

	rawHazards        int
	structuralHazards int
	totalStalls       int

	trace []CycleSnapshot
}

// NewSimulator creates a simulator for the given program. The program is
// not copied; callers must not mutate it while the simulation runs.
func NewSimulator(program []insts.Instruction, opts ...Option) *Simulator {
	sim := &Simulator{
		program:    program,
		states:     make([]instState, len(program)),
		scoreboard: NewScoreboard(),
		units:      NewUnitPool(),
		latencies:  latency.NewTable(),
		maxCycles:  DefaultMaxCycles,
		trace:      []CycleSnapshot{},
	}
	for i := range sim.states {
		sim.states[i] = newInstState()
	}

	for _, opt := range opts {
		opt(sim)
	}

	return sim
}

// Simulate runs a program to its terminal condition and returns the result.
func Simulate(program []insts.Instruction, opts ...Option) *Result {
	return NewSimulator(program, opts...).Run()
}

// Cycle returns the index of the last executed cycle.
func (sim *Simulator) Cycle() int {
	return sim.cycle
}

// Completed returns the number of retired instructions.
func (sim *Simulator) Completed() int {
	return sim.completed
}

// Done returns true when every instruction has retired or the cycle
// ceiling is reached.
func (sim *Simulator) Done() bool {
	return sim.completed == len(sim.program) || sim.cycle >= sim.maxCycles
}

// Run ticks the simulation to its terminal condition and returns the
// result. An empty program terminates at cycle 0 with an empty trace.
func (sim *Simulator) Run() *Result {
	for !sim.Done() {
		sim.Tick()
	}
	return sim.Result()
}

// Tick executes one cycle. A no-op once the simulation is done.
func (sim *Simulator) Tick() {
	if sim.Done() {
		return
	}

	sim.cycle++
	sim.units.Reset()
	sim.writeback()
	sim.execute()
	sim.issue()
	sim.decode()
	sim.fetch()
	sim.trace = append(sim.trace, sim.snapshot())
}

// writeback retires every instruction in WRITEBACK: free its destination,
// return its unit to the pool, and record the completion cycle.
func (sim *Simulator) writeback() {
	for i := range sim.states {
		state := &sim.states[i]
		if state.stage != StageWriteback {
			continue
		}

		inst := &sim.program[i]
		sim.scoreboard.Clear(inst.Dest, inst.ID)
		sim.units.Release(state.assignedUnit)
		state.assignedUnit = insts.UnitAny
		state.stage = StageComplete
		state.completeCycle = sim.cycle
		sim.completed++
	}
}

// execute advances every instruction in EXECUTE by one cycle and moves it
// to WRITEBACK once it has spent its opcode's latency there.
func (sim *Simulator) execute() {
	for i := range sim.states {
		state := &sim.states[i]
		if state.stage != StageExecute {
			continue
		}

		state.cyclesInStage++
		if state.cyclesInStage >= sim.latencies.Latency(sim.program[i].Op) {
			state.stage = StageWriteback
			state.cyclesInStage = 0
		}
	}
}

// issue moves instructions from ISSUE to EXECUTE in ascending id order,
// as unit capacity permits. An issuing instruction marks its destination
// with the cycle its value becomes readable.
func (sim *Simulator) issue() {
	for i := range sim.states {
		state := &sim.states[i]
		if state.stage != StageIssue {
			continue
		}

		inst := &sim.program[i]
		unit := inst.Op.Unit()
		if !sim.units.Allocate(unit) {
			continue
		}

		state.stage = StageExecute
		state.assignedUnit = unit
		state.cyclesInStage = 0
		state.issueCycle = sim.cycle
		sim.scoreboard.MarkBusy(inst.Dest, inst.ID, sim.cycle+sim.latencies.Latency(inst.Op))
	}
}

// decode checks hazards for every instruction in DECODE in ascending id
// order. A hazard-free instruction advances to ISSUE, where next tick's
// issue phase picks it up. Each cycle an instruction remains blocked
// counts as a separate hazard.
//
// The structural check runs against a per-tick admission ledger: each
// DECODE->ISSUE transition this tick consumes one slot of its class, so
// later instructions in the walk see the capacity their elders already
// claimed.
func (sim *Simulator) decode() {
	admission := NewUnitPool()

	for i := range sim.states {
		state := &sim.states[i]
		if state.stage != StageDecode {
			continue
		}

		inst := &sim.program[i]
		if reason, stalled := sim.dataHazard(inst); stalled {
			state.stalled = true
			state.stallReason = reason
			sim.rawHazards++
			sim.totalStalls++
			continue
		}

		unit := inst.Op.Unit()
		if !admission.Allocate(unit) {
			state.stalled = true
			state.stallReason = fmt.Sprintf("Structural - %s busy", unit)
			sim.structuralHazards++
			sim.totalStalls++
			continue
		}

		state.stalled = false
		state.stallReason = ""
		state.stage = StageIssue
	}
}

// dataHazard reports whether one of the instruction's sources is still
// being produced, src1 checked before src2.
func (sim *Simulator) dataHazard(inst *insts.Instruction) (string, bool) {
	for _, src := range []int{inst.Src1, inst.Src2} {
		if sim.scoreboard.IsBusy(src, sim.cycle) {
			reason := fmt.Sprintf("RAW on R%d (writer: I%d)",
				src, sim.scoreboard.WriterOf(src))
			return reason, true
		}
	}
	return "", false
}

// fetch admits instructions into the pipeline front end. An instruction
// entering DECODE claims its destination register on the scoreboard; the
// ready cycle stays unknown until it issues.
func (sim *Simulator) fetch() {
	for i := range sim.states {
		state := &sim.states[i]
		switch state.stage {
		case StageFetch:
			state.stage = StageDecode
			state.cyclesInStage = 0
			inst := &sim.program[i]
			sim.scoreboard.Claim(inst.Dest, inst.ID)
		case StageIdle:
			state.stage = StageFetch
		}
	}
}

// Stats returns the aggregated statistics for the run so far.
func (sim *Simulator) Stats() Stats {
	stats := Stats{
		TotalCycles:           sim.cycle,
		InstructionsCompleted: sim.completed,
		TotalStalls:           sim.totalStalls,
		RAWHazards:            sim.rawHazards,
		StructuralHazards:     sim.structuralHazards,
	}
	if sim.cycle > 0 {
		stats.IPC = float64(sim.completed) / float64(sim.cycle)
	}
	return stats
}

// Result returns the run result accumulated so far: the per-cycle trace
// plus the statistics block.
func (sim *Simulator) Result() *Result {
	return &Result{
		Stats:  sim.Stats(),
		Cycles: sim.trace,
	}
}

// Timeline returns per-instruction issue and completion cycles in id
// order.
func (sim *Simulator) Timeline() []TimelineEntry {
	timeline := make([]TimelineEntry, len(sim.program))
	for i, inst := range sim.program {
		timeline[i] = TimelineEntry{
			ID:            inst.ID,
			Text:          inst.Text,
			IssueCycle:    sim.states[i].issueCycle,
			CompleteCycle: sim.states[i].completeCycle,
		}
	}
	return timeline
}
