// Package main provides the entry point for PipeSim.
// PipeSim simulates a 5-stage superscalar out-of-order pipeline over a
// straight-line instruction trace and emits the per-cycle trace and
// aggregate statistics as JSON for visualization front-ends.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/sarchlab/pipesim/insts"
	"github.com/sarchlab/pipesim/timing/core"
	"github.com/sarchlab/pipesim/timing/latency"
	"github.com/sarchlab/pipesim/timing/pipeline"
)

var (
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	maxCycles  = flag.Int("max-cycles", pipeline.DefaultMaxCycles, "Cycle safety ceiling")
	verbose    = flag.Bool("v", false, "Verbose output on stderr")
)

// output is the envelope front-ends consume.
type output struct {
	Result *pipeline.Result `json:"result"`
}

// errorOutput is emitted on malformed input, with exit code 1.
type errorOutput struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// stdinPayload is the JSON accepted on standard input.
type stdinPayload struct {
	Instructions []string `json:"instructions"`
}

func main() {
	flag.Parse()

	lines, errOut := loadLines()
	if errOut != nil {
		fail(*errOut)
	}

	program := insts.NewParser().Parse(lines)
	if len(program) == 0 {
		fail(errorOutput{Error: "No instructions loaded from input."})
	}

	table, err := loadLatencyTable()
	if err != nil {
		fail(errorOutput{Error: "Invalid timing configuration.", Details: err.Error()})
	}

	c := core.NewCore(pipeline.NewSimulator(
		program,
		pipeline.WithLatencyTable(table),
		pipeline.WithMaxCycles(*maxCycles),
	))

	if *verbose {
		describeProgram(os.Stderr, c.ID(), program, table)
	}

	result, err := c.Run()
	if err != nil {
		fail(errorOutput{Error: "Simulation failed.", Details: err.Error()})
	}

	if *verbose {
		describeRun(os.Stderr, c.Simulator(), result)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output{Result: result}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
}

// loadLines reads the instruction lines from the file named on the
// command line, or from a JSON object on standard input when no file is
// given.
func loadLines() ([]string, *errorOutput) {
	if flag.NArg() >= 1 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			return nil, &errorOutput{
				Error:   "Could not read instruction file.",
				Details: err.Error(),
			}
		}
		return strings.Split(string(data), "\n"), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, &errorOutput{
			Error:   "Could not read standard input.",
			Details: err.Error(),
		}
	}

	var payload stdinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &errorOutput{
			Error:   "Invalid JSON input.",
			Details: err.Error(),
		}
	}
	return payload.Instructions, nil
}

// loadLatencyTable builds the latency table, from -config when given.
func loadLatencyTable() (*latency.Table, error) {
	if *configPath == "" {
		return latency.NewTable(), nil
	}

	config, err := latency.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return latency.NewTableWithConfig(config), nil
}

// describeProgram prints the parsed instruction table and the RAW
// dependency report.
func describeProgram(w io.Writer, coreID string, program []insts.Instruction, table *latency.Table) {
	fmt.Fprintf(w, "Core %s: %d instructions\n", coreID, len(program))
	fmt.Fprintln(w, "Instruction          | Unit   | Latency")
	for _, inst := range program {
		fmt.Fprintf(w, "%-20s | %-6s | %d\n",
			inst, inst.Op.Unit(), table.Latency(inst.Op))
	}

	deps := insts.Dependencies(program)
	if len(deps) == 0 {
		fmt.Fprintln(w, "No data dependencies detected.")
		return
	}
	for _, inst := range program {
		producers, ok := deps[inst.ID]
		if !ok {
			continue
		}
		parts := make([]string, len(producers))
		for i, id := range producers {
			parts[i] = fmt.Sprintf("I%d", id)
		}
		fmt.Fprintf(w, "I%d depends on: %s\n", inst.ID, strings.Join(parts, ", "))
	}
}

// describeRun prints the per-instruction timeline and a statistics dump.
func describeRun(w io.Writer, sim *pipeline.Simulator, result *pipeline.Result) {
	fmt.Fprintln(w, "ID  | Issue Cycle | Complete Cycle")
	for _, entry := range sim.Timeline() {
		fmt.Fprintf(w, "I%-2d | %11d | %14d\n",
			entry.ID, entry.IssueCycle, entry.CompleteCycle)
	}
	spew.Fdump(w, result.Stats)
}

// fail emits an error JSON document on stdout and exits non-zero.
func fail(e errorOutput) {
	data, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", e.Error)
		os.Exit(1)
	}
	fmt.Println(string(data))
	os.Exit(1)
}
