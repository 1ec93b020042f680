package registration

import (
	"sort"
	"strings"

	"rocketfist/internal/api"
)

// BuildRoster drops cancelled registrations, orders the rest by member name
// (case-insensitive), then registration time, then id, and counts them.
// Reserved counts every spot holder, checked-in ones included. No-shows are
// listed but counted in neither total.
func BuildRoster(inst InstanceInfo, rows []RosterEntry) Roster {
	entries := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		if r.Status == StatusCancelled {
			continue
		}
		entries = append(entries, r)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		an, bn := strings.ToLower(a.FullName), strings.ToLower(b.FullName)
		if an != bn {
			return an < bn
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.RegistrationID < b.RegistrationID
	})

	roster := Roster{Instance: inst, Entries: entries}
	for _, e := range entries {
		if e.Status.HoldsSpot() {
			roster.ReservedCount++
		}
		if e.Status == StatusCheckedIn {
			roster.CheckedInCount++
		}
	}
	return roster
}

// rule decides the next status of a registration. changed is false when the
// registration is already in the target state.
type rule func(current Status) (next Status, changed bool, err error)

func checkIn(current Status) (Status, bool, error) {
	switch current {
	case StatusReserved:
		return StatusCheckedIn, true, nil
	case StatusCheckedIn:
		return current, false, nil
	}
	return current, false, api.Errorf(api.ErrInvalidState, "cannot check in a %s registration", current)
}

func cancel(current Status) (Status, bool, error) {
	switch current {
	case StatusReserved:
		return StatusCancelled, true, nil
	case StatusCancelled:
		return current, false, nil
	}
	return current, false, api.Errorf(api.ErrInvalidState, "cannot cancel a %s registration", current)
}

func markNoShow(current Status) (Status, bool, error) {
	switch current {
	case StatusReserved:
		return StatusNoShow, true, nil
	case StatusNoShow:
		return current, false, nil
	}
	return current, false, api.Errorf(api.ErrInvalidState, "cannot mark a %s registration as no-show", current)
}
