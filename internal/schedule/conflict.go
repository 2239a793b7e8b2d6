package schedule

import "github.com/google/uuid"

// BusyInterval is an existing active interval (work shift or appointment)
// keyed by its row id so that updates can exclude themselves from the check.
type BusyInterval struct {
	ID    uuid.UUID
	Start int
	End   int
}

// HasConflict reports whether the proposed [start,end) overlaps any existing
// interval other than the one identified by exclude. Pass uuid.Nil for
// exclude when creating a new row. The same predicate serves doctor-schedule
// and room-occupancy checks; the caller scopes the existing list to one
// doctor or one room on one date.
func HasConflict(existing []BusyInterval, start, end int, exclude uuid.UUID) bool {
	for _, iv := range existing {
		if exclude != uuid.Nil && iv.ID == exclude {
			continue
		}
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
