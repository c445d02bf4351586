package pipeline

// StageOccupancy lists the original instruction texts occupying each
// pipeline stage at the end of a cycle, in ascending instruction id order.
// All five keys are always present in the JSON form, possibly as empty
// lists.
type StageOccupancy struct {
	Fetch     []string `json:"FETCH"`
	Decode    []string `json:"DECODE"`
	Issue     []string `json:"ISSUE"`
	Execute   []string `json:"EXECUTE"`
	Writeback []string `json:"WRITEBACK"`
}

// StallRecord describes one instruction stalled in DECODE this cycle.
type StallRecord struct {
	Instruction string `json:"instruction"`
	Reason      string `json:"reason"`
}

// CycleSnapshot captures pipeline occupancy and stalls at the end of one
// cycle.
type CycleSnapshot struct {
	Cycle  int            `json:"cycle"`
	Stages StageOccupancy `json:"stages"`
	Stalls []StallRecord  `json:"stalls"`
}

// Stats is the aggregated statistics block of a run result. The field
// names are consumed by front-ends and are normative.
//
// WARHazards, WAWHazards and BranchMispredictions are part of the external
// schema but are not modeled by this engine; they are always 0.
type Stats struct {
	TotalCycles           int     `json:"totalCycles"`
	InstructionsCompleted int     `json:"instructionsCompleted"`
	IPC                   float64 `json:"ipc"`
	TotalStalls           int     `json:"totalStalls"`
	RAWHazards            int     `json:"rawHazards"`
	WARHazards            int     `json:"warHazards"`
	WAWHazards            int     `json:"wawHazards"`
	StructuralHazards     int     `json:"structuralHazards"`
	BranchMispredictions  int     `json:"branchMispredictions"`
}

// Result is the structured run result: the per-cycle trace plus the
// statistics block.
type Result struct {
	Stats  Stats           `json:"stats"`
	Cycles []CycleSnapshot `json:"cycles"`
}

// TimelineEntry records when one instruction issued and completed.
// Cycle indices are -1 when the stage was never reached (runaway runs).
type TimelineEntry struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	IssueCycle    int    `json:"issueCycle"`
	CompleteCycle int    `json:"completeCycle"`
}

func (sim *Simulator) snapshot() CycleSnapshot {
	snap := CycleSnapshot{
		Cycle: sim.cycle,
		Stages: StageOccupancy{
			Fetch:     []string{},
			Decode:    []string{},
			Issue:     []string{},
			Execute:   []string{},
			Writeback: []string{},
		},
		Stalls: []StallRecord{},
	}

	for i, inst := range sim.program {
		state := &sim.states[i]
		switch state.stage {
		case StageFetch:
			snap.Stages.Fetch = append(snap.Stages.Fetch, inst.Text)
		case StageDecode:
			snap.Stages.Decode = append(snap.Stages.Decode, inst.Text)
		case StageIssue:
			snap.Stages.Issue = append(snap.Stages.Issue, inst.Text)
		case StageExecute:
			snap.Stages.Execute = append(snap.Stages.Execute, inst.Text)
		case StageWriteback:
			snap.Stages.Writeback = append(snap.Stages.Writeback, inst.Text)
		}
		if state.stage == StageDecode && state.stalled {
			snap.Stalls = append(snap.Stalls, StallRecord{
				Instruction: inst.Text,
				Reason:      state.stallReason,
			})
		}
	}

	return snap
}
