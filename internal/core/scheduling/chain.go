// Package scheduling contains the pure date-propagation logic for a
// project's operation chain. All input data must be pre-fetched by the
// caller - no I/O here.
package scheduling

import (
	"sort"
	"time"
)

// ShipmentPeriodHours is the fixed period of the trailing shipment
// operation, and the re-baseline horizon for overdue planned end dates.
const ShipmentPeriodHours = 24

// OperationPeriod computes the per-operation hour allotment from the hours
// remaining after the shipment window. A project holding only its shipment
// operation passes count 0 and receives the undivided total.
func OperationPeriod(totalHours, operationCount int) int {
	if operationCount < 1 {
		operationCount = 1
	}
	return totalHours / operationCount
}

// HoursBetween returns the whole hours from one timestamp to another.
func HoursBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours())
}

// Slot is the scheduling view of one operation. Nil Start/PlannedEnd mean
// the chain has not reached the operation yet.
type Slot struct {
	ID         string
	Priority   int
	Start      *time.Time
	PlannedEnd *time.Time
	Ended      bool
}

// ChainInput carries everything the propagation needs.
type ChainInput struct {
	// Slots in any order; propagation stable-sorts by priority ascending.
	Slots []Slot
	// ProjectStart is the project's start-first-operation date. While nil
	// the chain has not started and no dates are assigned.
	ProjectStart *time.Time
	// OperationPeriodHours applies to every slot except the last, which
	// always uses ShipmentPeriodHours.
	OperationPeriodHours int
	// Now drives the overdue re-baseline.
	Now time.Time
}

// PropagateDates recomputes the start/planned-end chain and returns the
// slots sorted by priority ascending (ties keep input order - the ordering
// must be deterministic across repeated runs).
//
// Slots that already carry a start date keep it; only their planned end is
// subject to the overdue correction. A slot without a start date chains
// from the previous slot's planned end (the first slot chains from
// ProjectStart). A non-ended slot whose planned end falls on a calendar
// date before today is re-baselined to now plus the shipment window before
// downstream slots chain from it. Running twice on unchanged input yields
// identical dates.
func PropagateDates(in ChainInput) []Slot {
	out := make([]Slot, len(in.Slots))
	copy(out, in.Slots)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	var prevEnd *time.Time
	for i := range out {
		s := &out[i]
		period := in.OperationPeriodHours
		if i == len(out)-1 {
			period = ShipmentPeriodHours
		}

		if s.Start == nil {
			var start *time.Time
			if i == 0 {
				start = in.ProjectStart
			} else {
				start = prevEnd
			}
			if start != nil {
				t := *start
				end := t.Add(time.Duration(period) * time.Hour)
				s.Start = &t
				s.PlannedEnd = &end
			}
		} else if s.PlannedEnd == nil {
			end := s.Start.Add(time.Duration(period) * time.Hour)
			s.PlannedEnd = &end
		}

		if !s.Ended && s.PlannedEnd != nil && dateBefore(*s.PlannedEnd, in.Now) {
			end := in.Now.Add(ShipmentPeriodHours * time.Hour)
			s.PlannedEnd = &end
		}

		prevEnd = s.PlannedEnd
	}

	return out
}

// dateBefore reports whether t's calendar date is strictly before now's.
func dateBefore(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty < ny
	}
	if tm != nm {
		return tm < nm
	}
	return td < nd
}
