package pipeline

import "github.com/sarchlab/pipesim/insts"

// Stage identifies an instruction's position in the pipeline.
type Stage uint8

// Pipeline stages. IDLE and COMPLETE are the pre- and post-pipeline
// states and never appear in cycle snapshots.
const (
	StageIdle Stage = iota
	StageFetch
	StageDecode
	StageIssue
	StageExecute
	StageWriteback
	StageComplete
)

var stageNames = [...]string{
	"IDLE", "FETCH", "DECODE", "ISSUE", "EXECUTE", "WRITEBACK", "COMPLETE",
}

// String returns the stage name as it appears in trace snapshots.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// instState is the mutable per-instruction pipeline state. It is created
// in StageIdle at simulation start, advanced monotonically by the driver,
// and never revisited once it reaches StageComplete.
type instState struct {
	stage         Stage
	assignedUnit  insts.Unit
	cyclesInStage int

	// stalled and stallReason are only meaningful while in StageDecode.
	stalled     bool
	stallReason string

	issueCycle    int
	completeCycle int
}

func newInstState() instState {
	return instState{
		stage:         StageIdle,
		assignedUnit:  insts.UnitAny,
		issueCycle:    -1,
		completeCycle: -1,
	}
}
