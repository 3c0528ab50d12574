package app

import (
	"sort"
	"time"

	"github.com/example/shopfloor/internal/core/scheduling"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// shipmentPriority ranks the synthetic trailing shipment operation above any
// hand-assigned priority so it always closes the chain.
const shipmentPriority = 999

// sortChain orders operations by priority ascending, ties by creation
// order. The stable ordering is load-bearing for date propagation.
func sortChain(ops []*secondary.OperationRecord) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Priority != ops[j].Priority {
			return ops[i].Priority < ops[j].Priority
		}
		return ops[i].CreatedAt.Before(ops[j].CreatedAt)
	})
}

// recomputeReadiness marks exactly the chain head - the earliest non-ended
// operation by priority - as ready to acceptance, unless it is already in
// work. Every other non-ended, non-in-work operation loses readiness.
func recomputeReadiness(ops []*secondary.OperationRecord) {
	sortChain(ops)
	headSeen := false
	for _, op := range ops {
		if op.IsEnded {
			continue
		}
		if !headSeen {
			headSeen = true
			if !op.InWork {
				op.ReadyToAcceptance = true
			}
			continue
		}
		if !op.InWork {
			op.ReadyToAcceptance = false
		}
	}
}

// propagateChain re-runs date propagation over the project's operations and
// writes the resulting dates back onto the records. Returns the IDs of
// operations whose dates changed.
func propagateChain(project *secondary.ProjectRecord, ops []*secondary.OperationRecord, now time.Time) []string {
	slots := make([]scheduling.Slot, len(ops))
	byID := make(map[string]*secondary.OperationRecord, len(ops))
	for i, op := range ops {
		slots[i] = scheduling.Slot{
			ID:         op.ID,
			Priority:   op.Priority,
			Start:      op.StartDate,
			PlannedEnd: op.PlannedEndDate,
			Ended:      op.IsEnded,
		}
		byID[op.ID] = op
	}

	result := scheduling.PropagateDates(scheduling.ChainInput{
		Slots:                slots,
		ProjectStart:         project.StartFirstOperationDate,
		OperationPeriodHours: project.OperationPeriod,
		Now:                  now,
	})

	var changed []string
	for _, slot := range result {
		op := byID[slot.ID]
		if !timesEqual(op.StartDate, slot.Start) || !timesEqual(op.PlannedEndDate, slot.PlannedEnd) {
			changed = append(changed, slot.ID)
		}
		op.StartDate = slot.Start
		op.PlannedEndDate = slot.PlannedEnd
	}
	return changed
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
