package search

import (
	"sort"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/constraints"
	"github.com/campusforge/timetablecore/internal/schedule"
	"github.com/campusforge/timetablecore/internal/solverapi"
	"github.com/campusforge/timetablecore/internal/varfactory"
)

// extract builds a schedule.MasterSchedule from a solved assignment,
// per spec.md §4.5's "Raw assignment -> MasterSchedule transformation".
func extract(cat catalog.Catalog, f *varfactory.Factory, asm *constraints.Assembler, assignment solverapi.Assignment) schedule.MasterSchedule {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(cat.Subjects))
	for _, s := range cat.Subjects {
		subjectByID[s.ID] = s
	}
	roomByID := make(map[string]catalog.Room, len(cat.Rooms))
	for _, r := range cat.Rooms {
		roomByID[r.ID] = r
	}

	sched := schedule.NewMasterSchedule()
	continuation := make(map[varfactory.SlotKey]bool)

	for startKey, blockVar := range asm.BlockStart {
		if !assignment.BoolValue(blockVar) {
			continue
		}
		nextKey := varfactory.SlotKey{Subject: startKey.Subject, Slot: startKey.Slot + 1, Kind: catalog.KindPractical}
		continuation[nextKey] = true
	}

	// Iterate in a stable order (by subject ID, then slot, then kind)
	// so that the deterministic room fallback below never depends on
	// Go's randomized map iteration order.
	keys := make([]varfactory.SlotKey, 0, len(f.ScheduleVar))
	for key := range f.ScheduleVar {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Subject != keys[j].Subject {
			return keys[i].Subject < keys[j].Subject
		}
		if keys[i].Slot != keys[j].Slot {
			return keys[i].Slot < keys[j].Slot
		}
		return keys[i].Kind < keys[j].Kind
	})

	for _, key := range keys {
		v := f.ScheduleVar[key]
		if !assignment.BoolValue(v) {
			continue
		}
		subj := subjectByID[key.Subject]
		room := resolveRoom(f, key, assignment, roomByID)
		day, hour := cat.Grid.DayHour(key.Slot)

		sched.Add(schedule.ClassBlock{
			Subject:              key.Subject,
			Name:                 subj.Name,
			Course:                subj.Course.Code,
			Semester:             subj.Semester,
			Section:              subj.Section,
			Category:             subj.Category,
			Kind:                 schedule.FromCatalogKind(key.Kind),
			PrimaryTeacher:       subj.PrimaryTeacher,
			Teachers:             subj.AllTeachers(),
			Room:                 room.ID,
			RoomKind:             room.Kind,
			Day:                  day,
			Hour:                 hour,
			ContinuationOfBlock:  continuation[key],
		})
	}

	return sched
}

// resolveRoom returns the room assigned to key. If no single
// room-assignment indicator came back set (a formulation mismatch),
// it falls back to the lowest-ID candidate room for key (spec.md
// §4.5's "Deterministic room-number fallback"); whether that room is
// already taken at that slot is not checked.
func resolveRoom(f *varfactory.Factory, key varfactory.SlotKey, assignment solverapi.Assignment, rooms map[string]catalog.Room) catalog.Room {
	candidates := f.CandidateRooms[key] // already sorted ascending by ID
	for _, roomID := range candidates {
		rk := varfactory.RoomKey{SlotKey: key, Room: roomID}
		if v, ok := f.RoomVar[rk]; ok && assignment.BoolValue(v) {
			return rooms[roomID]
		}
	}
	if len(candidates) > 0 {
		return rooms[candidates[0]]
	}
	return catalog.Room{}
}
