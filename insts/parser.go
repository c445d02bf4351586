package insts

import (
	"strconv"
	"strings"
)

// Parser converts textual instruction lines into Instruction records.
type Parser struct{}

// NewParser creates a new instruction parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a sequence of lines into instructions, assigning ids
// 1, 2, ... in input order. Blank lines and lines whose first non-space
// character is '#' are skipped and do not consume an id.
func (p *Parser) Parse(lines []string) []Instruction {
	instructions := make([]Instruction, 0, len(lines))

	id := 1
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		op := OpFromString(fields[0])

		inst := Instruction{
			ID:   id,
			Op:   op,
			Dest: RegNone,
			Src1: RegNone,
			Src2: RegNone,
			Text: line,
		}

		switch op {
		case OpLOAD:
			// LOAD Rd Rs1
			inst.Dest = parseRegister(field(fields, 1))
			inst.Src1 = parseRegister(field(fields, 2))

		case OpSTORE:
			// STORE Rd Rs1. Rd is the value being stored; the scoreboard
			// still treats it as a write target.
			inst.Dest = parseRegister(field(fields, 1))
			inst.Src1 = parseRegister(field(fields, 2))

		case OpBEQ, OpBNE:
			// BEQ/BNE Rs1 Rs2 target
			inst.Src1 = parseRegister(field(fields, 1))
			inst.Src2 = parseRegister(field(fields, 2))
			inst.BranchTarget = parseTarget(field(fields, 3))
			inst.IsBranch = true

		case OpJMP:
			// JMP target
			inst.BranchTarget = parseTarget(field(fields, 1))
			inst.IsBranch = true

		case OpNOP:
			// No operands.

		default:
			// OP Rd Rs1 Rs2
			inst.Dest = parseRegister(field(fields, 1))
			inst.Src1 = parseRegister(field(fields, 2))
			inst.Src2 = parseRegister(field(fields, 3))
		}

		instructions = append(instructions, inst)
		id++
	}

	return instructions
}

// field returns fields[i], or "" when the line is short.
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parseRegister parses an "R<n>" operand. Anything else, including an
// index outside [0, NumRegs), yields RegNone.
func parseRegister(s string) int {
	if len(s) < 2 || s[0] != 'R' {
		return RegNone
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= NumRegs {
		return RegNone
	}
	return n
}

// parseTarget parses a branch target. Malformed targets yield 0.
func parseTarget(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Dependencies reports, for each instruction, the ids of earlier
// instructions whose destination matches one of its sources. The result
// maps instruction id to producer ids in ascending order; instructions
// with no producers are absent.
func Dependencies(program []Instruction) map[int][]int {
	deps := make(map[int][]int)
	for i, inst := range program {
		for _, prev := range program[:i] {
			if prev.Dest < 0 {
				continue
			}
			if inst.Src1 == prev.Dest || inst.Src2 == prev.Dest {
				deps[inst.ID] = append(deps[inst.ID], prev.ID)
			}
		}
	}
	return deps
}
