package pipeline

import (
	"math"

	"github.com/sarchlab/pipesim/insts"
)

// readyUnscheduled marks a register claimed by an instruction that has not
// issued yet, so its ready cycle is unknown. It compares greater than any
// reachable cycle index.
const readyUnscheduled = math.MaxInt32

// Scoreboard tracks which architectural register is being produced, by
// whom, and when its value becomes readable.
//
// An instruction claims its destination when it enters DECODE
// (readyUnscheduled) and re-marks it with the real ready cycle when it
// issues. MarkBusy overwrites unconditionally: WAW dependencies are not
// modeled, a later writer simply takes ownership of the slot. Clear is
// guarded by a writer-id check so a stale earlier writer's writeback does
// not free a slot a later writer owns.
//
// STORE instructions claim their value register like a destination, so an
// instruction reading the register a STORE "writes" will stall behind it.
type Scoreboard struct {
	regs []regSlot
}

type regSlot struct {
	busy       bool
	writerID   int
	readyCycle int
}

// NewScoreboard creates a scoreboard with insts.NumRegs slots.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		regs: make([]regSlot, insts.NumRegs),
	}
}

// IsBusy returns true iff the register is being produced and its value is
// not yet readable at the given cycle. Out-of-range indices never report
// busy.
func (s *Scoreboard) IsBusy(reg, cycle int) bool {
	if reg < 0 || reg >= len(s.regs) {
		return false
	}
	return s.regs[reg].busy && s.regs[reg].readyCycle > cycle
}

// Claim marks the register as owned by an instruction that is in the
// pipeline but has not issued, so the ready cycle is still unknown.
func (s *Scoreboard) Claim(reg, writerID int) {
	s.MarkBusy(reg, writerID, readyUnscheduled)
}

// MarkBusy records that the register is being produced by writerID and
// becomes readable at readyCycle. A register already marked is overwritten
// unconditionally.
func (s *Scoreboard) MarkBusy(reg, writerID, readyCycle int) {
	if reg < 0 || reg >= len(s.regs) {
		return
	}
	s.regs[reg] = regSlot{busy: true, writerID: writerID, readyCycle: readyCycle}
}

// Clear frees the register if writerID still owns it. A no-op when a later
// writer has taken the slot over.
func (s *Scoreboard) Clear(reg, writerID int) {
	if reg < 0 || reg >= len(s.regs) {
		return
	}
	if s.regs[reg].writerID != writerID {
		return
	}
	s.regs[reg] = regSlot{writerID: -1, readyCycle: -1}
}

// WriterOf returns the id of the instruction producing the register, or
// -1 when the register is free or out of range.
func (s *Scoreboard) WriterOf(reg int) int {
	if reg < 0 || reg >= len(s.regs) || !s.regs[reg].busy {
		return -1
	}
	return s.regs[reg].writerID
}
