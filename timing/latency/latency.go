// Package latency provides the instruction timing model for the
// pipeline simulator.
//
// The default latency values are part of the simulator's contract with its
// front-ends; they can be overridden via Config for experiments.
package latency

import (
	"github.com/sarchlab/pipesim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *Config
}

// NewTable creates a new latency table with the default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultConfig(),
	}
}

// NewTableWithConfig creates a new latency table with a custom timing
// configuration.
func NewTableWithConfig(config *Config) *Table {
	return &Table{
		config: config,
	}
}

// Latency returns the execute-stage latency in cycles for the opcode.
func (t *Table) Latency(op insts.Op) int {
	switch op {
	case insts.OpADD, insts.OpSUB:
		return t.config.AddSubLatency
	case insts.OpMUL:
		return t.config.MulLatency
	case insts.OpDIV:
		return t.config.DivLatency
	case insts.OpFADD:
		return t.config.FAddLatency
	case insts.OpFMUL:
		return t.config.FMulLatency
	case insts.OpFDIV:
		return t.config.FDivLatency
	case insts.OpLOAD:
		return t.config.LoadLatency
	case insts.OpSTORE:
		return t.config.StoreLatency
	case insts.OpBEQ, insts.OpBNE, insts.OpJMP:
		return t.config.BranchLatency
	default:
		return t.config.NopLatency
	}
}

// IsMemoryOp returns true if the opcode accesses memory.
func (t *Table) IsMemoryOp(op insts.Op) bool {
	return op == insts.OpLOAD || op == insts.OpSTORE
}

// IsBranchOp returns true if the opcode is a branch.
func (t *Table) IsBranchOp(op insts.Op) bool {
	return op.IsBranch()
}

// Config returns the current timing configuration.
func (t *Table) Config() *Config {
	return t.config
}
