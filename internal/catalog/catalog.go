package catalog

import (
	"fmt"
	"sort"
)

// Catalog is the normalized, immutable input to the rest of the
// pipeline. It is produced once by a Builder and never mutated
// afterward (spec.md §3 "Lifecycle").
type Catalog struct {
	Grid     TimeGrid
	Rooms    []Room
	Teachers map[string]Teacher // by initials
	Reserved map[reservedKey]ReservedWindow
	Subjects []Subject
}

// ReservedWindowFor returns the reserved window for (category, year),
// and whether one was declared.
func (c Catalog) ReservedWindowFor(category Category, year int) (ReservedWindow, bool) {
	w, ok := c.Reserved[reservedKey{Category: category, Year: year}]
	return w, ok
}

// ReservedWindowsForYear returns every reserved window applicable to a
// given year, across all reserved categories.
func (c Catalog) ReservedWindowsForYear(year int) []ReservedWindow {
	var out []ReservedWindow
	for k, w := range c.Reserved {
		if k.Year == year {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// RoomsOfKind returns every room of the given kind, optionally
// filtered to a department (pass "" for no department filter).
func (c Catalog) RoomsOfKind(kind RoomKind, department string) []Room {
	var out []Room
	for _, r := range c.Rooms {
		if r.Kind != kind {
			continue
		}
		if kind == RoomKindLab && department != "" && r.Department != department {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MergeGroups partitions the catalog's subjects by MergeGroupID,
// skipping subjects that are not part of a merge.
func (c Catalog) MergeGroups() map[string][]Subject {
	groups := make(map[string][]Subject)
	for _, s := range c.Subjects {
		if s.MergeGroupID == "" {
			continue
		}
		groups[s.MergeGroupID] = append(groups[s.MergeGroupID], s)
	}
	return groups
}

// SplitGroups partitions the catalog's subjects by SplitGroupID,
// skipping subjects that are not part of a split.
func (c Catalog) SplitGroups() map[string][]Subject {
	groups := make(map[string][]Subject)
	for _, s := range c.Subjects {
		if s.SplitGroupID == "" {
			continue
		}
		groups[s.SplitGroupID] = append(groups[s.SplitGroupID], s)
	}
	return groups
}

// SameSubjectSections groups CORE_REQ/ELECTIVE subjects that are
// distinct sections of the same (course, semester, name): used for
// the same-subject-section non-concurrency constraint. Merge-group
// members are excluded, per spec.md §4.3 item 9.
func (c Catalog) SameSubjectSections() map[string][]Subject {
	groups := make(map[string][]Subject)
	for _, s := range c.Subjects {
		if s.MergeGroupID != "" {
			continue
		}
		if s.Category != CategoryCoreRequired && s.Category != CategoryElective {
			continue
		}
		key := fmt.Sprintf("%s|%d|%s", s.Course.Code, s.Semester, s.Name)
		groups[key] = append(groups[key], s)
	}
	for key, subs := range groups {
		if len(subs) <= 1 {
			delete(groups, key)
		}
	}
	return groups
}

// TeacherWeeklyLoad sums a teacher's taught hours across the whole
// catalog, counting a merge group once (the primary teacher carries
// it) and summing split-group partitions per teacher, per spec.md
// §4.1 item 1 and the SUPPLEMENTED FEATURES note in SPEC_FULL.md.
func (c Catalog) TeacherWeeklyLoad() map[string]int {
	load := make(map[string]int)
	seenMerge := make(map[string]bool)

	for _, s := range c.Subjects {
		if s.MergeGroupID != "" {
			if seenMerge[s.MergeGroupID] {
				continue
			}
			seenMerge[s.MergeGroupID] = true
		}

		hours := s.Taught
		if s.SplitPartition != nil {
			hours = *s.SplitPartition
		}
		load[s.PrimaryTeacher] += hours.Total()
		for _, co := range s.CoTeachers {
			load[co] += hours.Total()
		}
	}
	return load
}
