package pipeline

import (
	"fmt"

	"github.com/sarchlab/pipesim/insts"
)

// Unit pool capacities per class.
const (
	NumALUUnits    = 2
	NumFPUUnits    = 1
	NumMEMUnits    = 1
	NumBranchUnits = 1
)

// poolClasses enumerates the pooled classes in display order.
var poolClasses = []insts.Unit{
	insts.UnitALU, insts.UnitFPU, insts.UnitMEM, insts.UnitBranch,
}

// UnitPool manages the bounded execution-unit capacity per class. It is
// reset to full capacity at the start of every tick, then re-allocated
// while that tick's issue decisions are made, so the pool reflects who is
// issuing this cycle rather than who is in EXECUTE.
//
// UnitAny bypasses the pool entirely: it is always available and
// allocating or releasing it does not touch any counter. NOPs would
// otherwise wedge in DECODE behind a zero-capacity class.
type UnitPool struct {
	capacity  map[insts.Unit]int
	available map[insts.Unit]int
}

// NewUnitPool creates a pool with the fixed reference capacities.
func NewUnitPool() *UnitPool {
	p := &UnitPool{
		capacity: map[insts.Unit]int{
			insts.UnitALU:    NumALUUnits,
			insts.UnitFPU:    NumFPUUnits,
			insts.UnitMEM:    NumMEMUnits,
			insts.UnitBranch: NumBranchUnits,
		},
		available: make(map[insts.Unit]int),
	}
	p.Reset()
	return p
}

// IsAvailable returns true if a unit of the class is free.
func (p *UnitPool) IsAvailable(unit insts.Unit) bool {
	if unit == insts.UnitAny {
		return true
	}
	return p.available[unit] > 0
}

// Allocate takes one unit of the class. Returns false when none is free.
func (p *UnitPool) Allocate(unit insts.Unit) bool {
	if unit == insts.UnitAny {
		return true
	}
	if p.available[unit] > 0 {
		p.available[unit]--
		return true
	}
	return false
}

// Release returns one unit of the class, capped at its capacity.
func (p *UnitPool) Release(unit insts.Unit) {
	if unit == insts.UnitAny {
		return
	}
	if p.available[unit] < p.capacity[unit] {
		p.available[unit]++
	}
}

// Reset restores every class to full capacity.
func (p *UnitPool) Reset() {
	for unit, n := range p.capacity {
		p.available[unit] = n
	}
}

// Capacity returns the capacity of the class.
func (p *UnitPool) Capacity(unit insts.Unit) int {
	return p.capacity[unit]
}

// Available returns the number of free units of the class.
func (p *UnitPool) Available(unit insts.Unit) int {
	return p.available[unit]
}

// Status renders a "CLASS(available/capacity)" summary for diagnostics.
func (p *UnitPool) Status() string {
	s := "Units:"
	for _, unit := range poolClasses {
		s += fmt.Sprintf(" %s(%d/%d)", unit, p.available[unit], p.capacity[unit])
	}
	return s
}
