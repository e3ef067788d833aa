// Package exporter writes a solved schedule out as JSON for operators
// and downstream tooling, separate from the machine-to-machine
// solverapi/schedule types. Grounded on the teacher's internal/
// exporter/json_exporter.go: a day -> slot -> activity breakdown plus
// a summary and an assistant list, generalized from the teacher's
// hardcoded 5-day/7-block UDP calendar to whatever catalog.TimeGrid
// the run was configured with.
package exporter

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/schedule"
)

// ScheduleExport is the root JSON document written to disk.
type ScheduleExport struct {
	GeneratedAt string            `json:"generated_at"`
	Summary     ScheduleSummary   `json:"summary"`
	Days        []DaySchedule     `json:"days"`
	Assistants  []AssistantExport `json:"assistants"`
}

// ScheduleSummary mirrors schedule.Summary plus the number of distinct
// rooms used, derived from the schedule itself.
type ScheduleSummary struct {
	Status          string `json:"status"`
	LatestSlotUsed  int    `json:"latest_slot_used"`
	LectureCount    int    `json:"lecture_count"`
	TutorialCount   int    `json:"tutorial_count"`
	PracticalCount  int    `json:"practical_count"`
	ObjectiveValue  int    `json:"objective_value"`
	TotalRoomsUsed  int    `json:"total_rooms_used"`
}

// DaySchedule is one calendar day's worth of scheduled hours.
type DaySchedule struct {
	Day   string     `json:"day"`
	Slots []SlotBlock `json:"slots"`
}

// SlotBlock is one hour-slot within a day.
type SlotBlock struct {
	Hour       string            `json:"hour"`
	Activities []ActivityExport  `json:"activities"`
}

// ActivityExport is one scheduled class-hour.
type ActivityExport struct {
	Subject  string   `json:"subject"`
	Course   string   `json:"course"`
	Semester int      `json:"semester"`
	Section  string   `json:"section,omitempty"`
	Kind     string   `json:"kind"`
	Room     string   `json:"room"`
	Teachers []string `json:"teachers"`
}

// AssistantExport is one assistant assignment to a practical block.
type AssistantExport struct {
	Subject    string   `json:"subject"`
	Day        string   `json:"day"`
	Hour       string   `json:"hour"`
	Assistants []string `json:"assistants"`
}

// Export writes sched, summary and assistants to filename as indented
// JSON, resolving day/hour labels from grid and subject names from
// subjectNames (keyed by catalog.SubjectID, as produced by a
// catalog.Catalog's Subjects).
func Export(grid catalog.TimeGrid, sched schedule.MasterSchedule, summary schedule.Summary,
	assistants schedule.AssistantAssignments, subjectNames map[catalog.SubjectID]string, filename string) error {

	export := ScheduleExport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary:     buildSummary(sched, summary),
		Days:        buildDays(grid, sched),
		Assistants:  buildAssistants(grid, assistants, subjectNames),
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func buildSummary(sched schedule.MasterSchedule, summary schedule.Summary) ScheduleSummary {
	rooms := make(map[string]bool)
	for _, byHour := range sched {
		for _, blocks := range byHour {
			for _, b := range blocks {
				if b.Room != "" {
					rooms[b.Room] = true
				}
			}
		}
	}
	return ScheduleSummary{
		Status:         summary.Status,
		LatestSlotUsed: int(summary.LatestSlotUsed),
		LectureCount:   summary.LectureCount,
		TutorialCount:  summary.TutorialCount,
		PracticalCount: summary.PracticalCount,
		ObjectiveValue: summary.ObjectiveValue,
		TotalRoomsUsed: len(rooms),
	}
}

func buildDays(grid catalog.TimeGrid, sched schedule.MasterSchedule) []DaySchedule {
	days := make([]DaySchedule, len(grid.Days))
	for d, name := range grid.Days {
		slots := make([]SlotBlock, grid.HoursPerDay())
		for h, label := range grid.Hours {
			activities := make([]ActivityExport, 0, len(sched.At(d, h)))
			for _, b := range sched.At(d, h) {
				activities = append(activities, ActivityExport{
					Subject:  string(b.Subject),
					Course:   b.Course,
					Semester: b.Semester,
					Section:  b.Section,
					Kind:     string(b.Kind),
					Room:     b.Room,
					Teachers: b.Teachers,
				})
			}
			sort.Slice(activities, func(i, j int) bool { return activities[i].Subject < activities[j].Subject })
			slots[h] = SlotBlock{Hour: label, Activities: activities}
		}
		days[d] = DaySchedule{Day: name, Slots: slots}
	}
	return days
}

func buildAssistants(grid catalog.TimeGrid, assistants schedule.AssistantAssignments,
	subjectNames map[catalog.SubjectID]string) []AssistantExport {

	out := make([]AssistantExport, 0, len(assistants))
	for key, names := range assistants {
		day, hour := grid.DayHour(key.StartSlot)
		subj := subjectNames[key.Subject]
		if subj == "" {
			subj = string(key.Subject)
		}
		out = append(out, AssistantExport{
			Subject:    subj,
			Day:        grid.Days[day],
			Hour:       grid.Hours[hour],
			Assistants: append([]string(nil), names...),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Day < out[j].Day
	})
	return out
}
