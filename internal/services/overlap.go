package services

import (
	"slices"

	"petcare-route-service/internal/domain"
)

// DetectOverlappingWindows groups visits sharing a byte-identical
// (startTime, endTime) pair and returns one OverlappingTimeWindow per
// group with at least two members.
//
// Grouping uses exact timestamp equality, not interval overlap: windows
// that overlap but differ by even a second are not flagged. This is a
// known detection gap kept for compatibility with existing behavior.
func DetectOverlappingWindows(visits []domain.Visit) []domain.OverlappingTimeWindow {
	type windowKey struct {
		start int64
		end   int64
	}

	groups := make(map[windowKey][]domain.Visit)
	for _, v := range visits {
		k := windowKey{start: v.StartTime.UnixNano(), end: v.EndTime.UnixNano()}
		groups[k] = append(groups[k], v)
	}

	out := make([]domain.OverlappingTimeWindow, 0, len(groups))
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		out = append(out, domain.OverlappingTimeWindow{
			StartTime: members[0].StartTime,
			EndTime:   members[0].EndTime,
			Visits:    members,
		})
	}

	// Deterministic output order: by window start, then end.
	slices.SortFunc(out, func(a, b domain.OverlappingTimeWindow) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return a.EndTime.Compare(b.EndTime)
	})

	return out
}
