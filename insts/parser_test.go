package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/insts"
)

var _ = Describe("Parser", func() {
	var parser *insts.Parser

	BeforeEach(func() {
		parser = insts.NewParser()
	})

	It("should parse a three-operand ALU instruction", func() {
		program := parser.Parse([]string{"ADD R1 R2 R3"})

		Expect(program).To(HaveLen(1))
		Expect(program[0].ID).To(Equal(1))
		Expect(program[0].Op).To(Equal(insts.OpADD))
		Expect(program[0].Dest).To(Equal(1))
		Expect(program[0].Src1).To(Equal(2))
		Expect(program[0].Src2).To(Equal(3))
		Expect(program[0].IsBranch).To(BeFalse())
		Expect(program[0].Text).To(Equal("ADD R1 R2 R3"))
	})

	It("should parse LOAD with a destination and one source", func() {
		program := parser.Parse([]string{"LOAD R4 R1"})

		Expect(program[0].Op).To(Equal(insts.OpLOAD))
		Expect(program[0].Dest).To(Equal(4))
		Expect(program[0].Src1).To(Equal(1))
		Expect(program[0].Src2).To(Equal(insts.RegNone))
	})

	It("should parse STORE with the stored value as write target", func() {
		program := parser.Parse([]string{"STORE R4 R1"})

		Expect(program[0].Op).To(Equal(insts.OpSTORE))
		Expect(program[0].Dest).To(Equal(4))
		Expect(program[0].Src1).To(Equal(1))
	})

	It("should parse conditional branches", func() {
		program := parser.Parse([]string{"BEQ R1 R2 12"})

		Expect(program[0].Op).To(Equal(insts.OpBEQ))
		Expect(program[0].Dest).To(Equal(insts.RegNone))
		Expect(program[0].Src1).To(Equal(1))
		Expect(program[0].Src2).To(Equal(2))
		Expect(program[0].IsBranch).To(BeTrue())
		Expect(program[0].BranchTarget).To(Equal(12))
	})

	It("should parse JMP with only a target", func() {
		program := parser.Parse([]string{"JMP 3"})

		Expect(program[0].Op).To(Equal(insts.OpJMP))
		Expect(program[0].IsBranch).To(BeTrue())
		Expect(program[0].BranchTarget).To(Equal(3))
		Expect(program[0].Src1).To(Equal(insts.RegNone))
	})

	It("should skip blank lines and comments without consuming ids", func() {
		program := parser.Parse([]string{
			"# header comment",
			"",
			"ADD R1 R2 R3",
			"   ",
			"  # indented comment",
			"SUB R4 R5 R6",
		})

		Expect(program).To(HaveLen(2))
		Expect(program[0].ID).To(Equal(1))
		Expect(program[1].ID).To(Equal(2))
		Expect(program[1].Op).To(Equal(insts.OpSUB))
	})

	It("should map unknown opcodes to NOP, keeping trace length", func() {
		program := parser.Parse([]string{"FROB R1 R2 R3", "ADD R1 R2 R3"})

		Expect(program).To(HaveLen(2))
		Expect(program[0].Op).To(Equal(insts.OpNOP))
		Expect(program[0].Dest).To(Equal(insts.RegNone))
	})

	It("should treat malformed register operands as absent", func() {
		program := parser.Parse([]string{"ADD X1 R2", "ADD R1 R2 R99"})

		Expect(program[0].Dest).To(Equal(insts.RegNone))
		Expect(program[0].Src1).To(Equal(2))
		Expect(program[0].Src2).To(Equal(insts.RegNone))
		Expect(program[1].Src2).To(Equal(insts.RegNone))
	})

	It("should treat malformed branch targets as 0", func() {
		program := parser.Parse([]string{"JMP up", "BEQ R1 R2"})

		Expect(program[0].BranchTarget).To(Equal(0))
		Expect(program[1].BranchTarget).To(Equal(0))
	})

	It("should preserve the original text verbatim", func() {
		program := parser.Parse([]string{"  ADD  R1 R2   R3 "})

		Expect(program[0].Text).To(Equal("  ADD  R1 R2   R3 "))
	})
})

var _ = Describe("Dependencies", func() {
	It("should report RAW producers by id", func() {
		program := insts.NewParser().Parse([]string{
			"ADD R1 R2 R3",
			"MUL R4 R1 R5",
			"SUB R6 R1 R4",
		})

		deps := insts.Dependencies(program)

		Expect(deps).NotTo(HaveKey(1))
		Expect(deps[2]).To(Equal([]int{1}))
		Expect(deps[3]).To(Equal([]int{1, 2}))
	})

	It("should report nothing for independent instructions", func() {
		program := insts.NewParser().Parse([]string{
			"ADD R1 R2 R3",
			"ADD R4 R5 R6",
		})

		Expect(insts.Dependencies(program)).To(BeEmpty())
	})
})
