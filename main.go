// Package main provides the entry point for PipeSim.
// PipeSim is a cycle-level 5-stage superscalar pipeline simulator.
//
// For the full CLI, use: go run ./cmd/pipesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("PipeSim - Superscalar Pipeline Simulator")
	fmt.Println("")
	fmt.Println("Usage: pipesim [options] <instructions.txt>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to timing configuration JSON file")
	fmt.Println("  -max-cycles  Cycle safety ceiling")
	fmt.Println("  -v           Verbose output on stderr")
	fmt.Println("")
	fmt.Println("With no file argument, reads {\"instructions\": [...]} JSON")
	fmt.Println("from standard input and writes the run result JSON to stdout.")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/pipesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/pipesim' instead.")
	}
}
