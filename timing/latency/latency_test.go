package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/insts"
	"github.com/sarchlab/pipesim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("should use the reference latency per opcode", func() {
			Expect(table.Latency(insts.OpADD)).To(Equal(1))
			Expect(table.Latency(insts.OpSUB)).To(Equal(1))
			Expect(table.Latency(insts.OpMUL)).To(Equal(3))
			Expect(table.Latency(insts.OpDIV)).To(Equal(8))
			Expect(table.Latency(insts.OpFADD)).To(Equal(4))
			Expect(table.Latency(insts.OpFMUL)).To(Equal(5))
			Expect(table.Latency(insts.OpFDIV)).To(Equal(12))
			Expect(table.Latency(insts.OpLOAD)).To(Equal(3))
			Expect(table.Latency(insts.OpSTORE)).To(Equal(2))
			Expect(table.Latency(insts.OpBEQ)).To(Equal(1))
			Expect(table.Latency(insts.OpBNE)).To(Equal(1))
			Expect(table.Latency(insts.OpJMP)).To(Equal(1))
			Expect(table.Latency(insts.OpNOP)).To(Equal(1))
		})
	})

	Describe("Helpers", func() {
		It("should classify memory operations", func() {
			Expect(table.IsMemoryOp(insts.OpLOAD)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpSTORE)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpADD)).To(BeFalse())
		})

		It("should classify branch operations", func() {
			Expect(table.IsBranchOp(insts.OpJMP)).To(BeTrue())
			Expect(table.IsBranchOp(insts.OpLOAD)).To(BeFalse())
		})
	})

	Describe("Config", func() {
		It("should validate the default config", func() {
			Expect(latency.DefaultConfig().Validate()).To(Succeed())
		})

		It("should reject non-positive latencies", func() {
			config := latency.DefaultConfig()
			config.DivLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should clone without sharing", func() {
			config := latency.DefaultConfig()
			clone := config.Clone()
			clone.MulLatency = 99
			Expect(config.MulLatency).To(Equal(3))
		})

		It("should round-trip through a JSON file", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "timing.json")

			config := latency.DefaultConfig()
			config.LoadLatency = 7
			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.LoadLatency).To(Equal(7))
			Expect(loaded.DivLatency).To(Equal(8))
		})

		It("should keep defaults for fields absent from the file", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "timing.json")
			Expect(os.WriteFile(path, []byte(`{"mul_latency": 5}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MulLatency).To(Equal(5))
			Expect(loaded.FDivLatency).To(Equal(12))
		})

		It("should fail to load a missing file", func() {
			_, err := latency.LoadConfig(filepath.Join(GinkgoT().TempDir(), "absent.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should drive the table through a custom config", func() {
			config := latency.DefaultConfig()
			config.AddSubLatency = 2
			custom := latency.NewTableWithConfig(config)
			Expect(custom.Latency(insts.OpADD)).To(Equal(2))
			Expect(custom.Config()).To(BeIdenticalTo(config))
		})
	})
})
