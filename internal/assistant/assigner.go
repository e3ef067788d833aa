// Package assistant is the Assistant Assigner (spec.md §4.6): a
// deterministic post-pass that allocates same-department teachers to
// practical 2-hour blocks whose student count exceeds a configured
// ratio. It never mutates the MasterSchedule it reads (spec.md §5
// "Ordering"); its output lands in a separate schedule.
// AssistantAssignments map. Grounded on the teacher's
// internal/solver/burke_room_assignment.go: sort candidates by a
// scoring key, assign greedily block by block, track a running
// workload map and prefer options that don't disturb it, all in a
// fixed iteration order so identical inputs reproduce identical
// outputs.
package assistant

import (
	"math"
	"sort"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/config"
	"github.com/campusforge/timetablecore/internal/schedule"
	"github.com/campusforge/timetablecore/internal/xerrors"
)

// Result is the Assistant Assigner's output: the assignment map, the
// post-allocation workload, and any shortage warnings.
type Result struct {
	Assignments schedule.AssistantAssignments
	Workload    schedule.TeacherWorkload
	Diagnostics xerrors.Diagnostics
}

// practicalBlock is one 2-hour practical block found in sched, keyed
// by the subject it belongs to and the slot it starts at.
type practicalBlock struct {
	subject      catalog.Subject
	startSlot    catalog.Slot
	day, hourA   int
	hourB        int
	coTeachers   []string
}

// Assign runs the algorithm from spec.md §4.6 once over sched.
func Assign(cat catalog.Catalog, cfg config.Config, sched schedule.MasterSchedule) Result {
	workload := initialWorkload(sched)
	busy := busyMatrix(cat, sched)

	blocks := findPracticalBlocks(cat, sched)
	sort.Slice(blocks, func(i, j int) bool {
		bi, bj := blocks[i], blocks[j]
		if bi.subject.Course.Code != bj.subject.Course.Code {
			return bi.subject.Course.Code < bj.subject.Course.Code
		}
		if bi.subject.Semester != bj.subject.Semester {
			return bi.subject.Semester < bj.subject.Semester
		}
		return bi.subject.Name < bj.subject.Name
	})

	assignments := make(schedule.AssistantAssignments)
	var diag xerrors.Diagnostics

	for _, block := range blocks {
		teachersNeeded := int(math.Ceil(float64(block.subject.Students) / float64(cfg.AssistantRatio)))
		assistantsNeeded := teachersNeeded - 1 - len(block.coTeachers)
		if assistantsNeeded <= 0 {
			continue
		}

		pool := buildPool(cat, cfg, workload, busy, block)
		sort.Slice(pool, func(i, j int) bool {
			if workload[pool[i].Initials] != workload[pool[j].Initials] {
				return workload[pool[i].Initials] < workload[pool[j].Initials]
			}
			return pool[i].Initials < pool[j].Initials
		})

		n := assistantsNeeded
		if n > len(pool) {
			n = len(pool)
			diag.Add(xerrors.CodeFeasibilityGuard, xerrors.SeverityWarning,
				"assistant shortage for %s (%s sem %d): needed %d, found %d",
				block.subject.Name, block.subject.Course.Code, block.subject.Semester, assistantsNeeded, n)
		}

		chosen := pool[:n]
		key := schedule.AssistantKey{Subject: block.subject.ID, StartSlot: block.startSlot}
		for _, t := range chosen {
			assignments[key] = append(assignments[key], t.Initials)
			workload[t.Initials] += 2
			busy[busyKey{Teacher: t.Initials, Slot: block.startSlot}] = true
			busy[busyKey{Teacher: t.Initials, Slot: block.startSlot + 1}] = true
		}
	}

	return Result{Assignments: assignments, Workload: workload, Diagnostics: diag}
}

func initialWorkload(sched schedule.MasterSchedule) schedule.TeacherWorkload {
	load := make(schedule.TeacherWorkload)
	for _, byHour := range sched {
		for _, blocks := range byHour {
			for _, b := range blocks {
				for _, t := range b.Teachers {
					load[t]++
				}
			}
		}
	}
	return load
}

type busyKey struct {
	Teacher string
	Slot    catalog.Slot
}

// busyMatrix records, for every (teacher, slot), whether that teacher
// already has a class then, so the pool-building step below can skip
// anyone unavailable during a candidate block.
func busyMatrix(cat catalog.Catalog, sched schedule.MasterSchedule) map[busyKey]bool {
	busy := make(map[busyKey]bool)
	for _, byHour := range sched {
		for _, blocks := range byHour {
			for _, b := range blocks {
				slot := cat.Grid.Slot(b.Day, b.Hour)
				for _, t := range b.Teachers {
					busy[busyKey{Teacher: t, Slot: slot}] = true
				}
			}
		}
	}
	return busy
}

func findPracticalBlocks(cat catalog.Catalog, sched schedule.MasterSchedule) []practicalBlock {
	subjectByID := make(map[catalog.SubjectID]catalog.Subject, len(cat.Subjects))
	for _, s := range cat.Subjects {
		subjectByID[s.ID] = s
	}

	var blocks []practicalBlock
	seen := make(map[catalog.SubjectID]map[[2]int]bool) // subject -> (day, hour) -> already recorded

	for day, byHour := range sched {
		for hour, classBlocks := range byHour {
			for _, b := range classBlocks {
				if b.Kind != schedule.KindPractical || b.ContinuationOfBlock {
					continue
				}
				subj, ok := subjectByID[b.Subject]
				if !ok {
					continue
				}
				if seen[b.Subject] == nil {
					seen[b.Subject] = make(map[[2]int]bool)
				}
				dayHour := [2]int{day, hour}
				if seen[b.Subject][dayHour] {
					continue
				}
				seen[b.Subject][dayHour] = true

				co := make([]string, 0, len(subj.CoTeachers))
				co = append(co, subj.CoTeachers...)

				blocks = append(blocks, practicalBlock{
					subject:    subj,
					startSlot:  cat.Grid.Slot(day, hour),
					day:        day,
					hourA:      hour,
					hourB:      hour + 1,
					coTeachers: co,
				})
			}
		}
	}
	return blocks
}

// buildPool returns every same-department teacher eligible to assist
// on block: not the primary, under the weekly cap, and free at both
// hours of the block.
func buildPool(cat catalog.Catalog, cfg config.Config, workload schedule.TeacherWorkload, busy map[busyKey]bool, block practicalBlock) []catalog.Teacher {
	var pool []catalog.Teacher
	nextSlot := block.startSlot + 1

	initialsSorted := make([]string, 0, len(cat.Teachers))
	for initials := range cat.Teachers {
		initialsSorted = append(initialsSorted, initials)
	}
	sort.Strings(initialsSorted)

	for _, initials := range initialsSorted {
		t := cat.Teachers[initials]
		if t.Dept != block.subject.Department {
			continue
		}
		if initials == block.subject.PrimaryTeacher {
			continue
		}
		if workload[initials]+2 > cfg.TeacherWeeklyCap {
			continue
		}
		if busy[busyKey{Teacher: initials, Slot: block.startSlot}] || busy[busyKey{Teacher: initials, Slot: nextSlot}] {
			continue
		}
		pool = append(pool, t)
	}
	return pool
}
