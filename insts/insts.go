// Package insts provides the instruction model and text parser for the
// pipeline simulator.
//
// Instructions are written one per line in a small assembly-like grammar:
//
//	ADD R1 R2 R3      three-operand ALU/FPU form
//	LOAD R4 R1        load into R4 from the address in R1
//	STORE R4 R1       store R4 to the address in R1
//	BEQ R1 R2 12      conditional branch to instruction 12
//	JMP 3             unconditional jump
//
// Usage:
//
//	parser := insts.NewParser()
//	program := parser.Parse([]string{"ADD R1 R2 R3", "SUB R4 R1 R5"})
package insts

import "fmt"

// Op represents an instruction opcode.
type Op uint8

// Opcodes.
const (
	OpADD Op = iota
	OpSUB
	OpMUL
	OpDIV
	OpFADD
	OpFMUL
	OpFDIV
	OpLOAD
	OpSTORE
	OpBEQ
	OpBNE
	OpJMP
	OpNOP
)

var opNames = [...]string{
	"ADD", "SUB", "MUL", "DIV", "FADD", "FMUL",
	"FDIV", "LOAD", "STORE", "BEQ", "BNE", "JMP", "NOP",
}

// String returns the mnemonic for the opcode.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "UNKNOWN"
}

// OpFromString maps a mnemonic to its opcode. Unrecognized mnemonics map
// to OpNOP so a malformed line still occupies one slot in the trace.
func OpFromString(s string) Op {
	for i, name := range opNames {
		if s == name {
			return Op(i)
		}
	}
	return OpNOP
}

// Unit represents an execution unit class.
type Unit uint8

// Execution unit classes.
const (
	UnitALU Unit = iota
	UnitFPU
	UnitMEM
	UnitBranch
	UnitAny
)

var unitNames = [...]string{"ALU", "FPU", "MEM", "BRANCH", "ANY"}

// String returns the class name.
func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "UNKNOWN"
}

// Unit returns the execution unit class the opcode must issue to.
func (o Op) Unit() Unit {
	switch o {
	case OpADD, OpSUB, OpMUL, OpDIV:
		return UnitALU
	case OpFADD, OpFMUL, OpFDIV:
		return UnitFPU
	case OpLOAD, OpSTORE:
		return UnitMEM
	case OpBEQ, OpBNE, OpJMP:
		return UnitBranch
	default:
		return UnitAny
	}
}

// IsBranch returns true for branch opcodes.
func (o Op) IsBranch() bool {
	return o == OpBEQ || o == OpBNE || o == OpJMP
}

// NumRegs is the number of architectural registers tracked by the
// scoreboard. Register indices outside [0, NumRegs) carry no dependency.
const NumRegs = 32

// RegNone marks an absent register operand.
const RegNone = -1

// Instruction is one parsed instruction. Instructions are immutable once
// parsed; the simulator keeps its mutable per-instruction state separately.
type Instruction struct {
	// ID is assigned 1, 2, ... in input order.
	ID int
	// Op is the opcode.
	Op Op
	// Dest is the destination register index, or RegNone.
	// Note that STORE carries its stored value here and the scoreboard
	// treats it as a write target (see the scoreboard docs).
	Dest int
	// Src1 and Src2 are source register indices, or RegNone.
	Src1 int
	Src2 int
	// IsBranch is true for BEQ, BNE and JMP.
	IsBranch bool
	// BranchTarget is the target instruction index. Only meaningful when
	// IsBranch is set; targets are parsed but never followed.
	BranchTarget int
	// Text is the original input line, preserved verbatim for the trace.
	Text string
}

// String renders the instruction for diagnostics, e.g. "I 3: ADD   R1 R2 R3"
// (the mnemonic is padded to five columns).
func (i Instruction) String() string {
	s := fmt.Sprintf("I%2d: %-5s", i.ID, i.Op)
	if i.Dest >= 0 {
		s += fmt.Sprintf(" R%d", i.Dest)
	}
	if i.Src1 >= 0 {
		s += fmt.Sprintf(" R%d", i.Src1)
	}
	if i.Src2 >= 0 {
		s += fmt.Sprintf(" R%d", i.Src2)
	}
	if i.IsBranch {
		s += fmt.Sprintf(" [BR->%d]", i.BranchTarget)
	}
	return s
}
