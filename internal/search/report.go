package search

import (
	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/schedule"
	"github.com/campusforge/timetablecore/internal/solverapi"
)

// summarize computes the aggregate statistics spec.md §6 lists
// alongside a solved schedule: optimality status, latest slot used,
// and per-kind counts.
func summarize(grid catalog.TimeGrid, sched schedule.MasterSchedule, outcome Outcome, result solverapi.Result) schedule.Summary {
	summary := schedule.Summary{
		Status:         string(outcome),
		LatestSlotUsed: catalog.Invalid,
		ObjectiveValue: result.ObjectiveValue,
	}

	for day, byHour := range sched {
		for hour, blocks := range byHour {
			slot := grid.Slot(day, hour)
			if slot > summary.LatestSlotUsed {
				summary.LatestSlotUsed = slot
			}
			for _, b := range blocks {
				switch b.Kind {
				case schedule.KindLecture:
					summary.LectureCount++
				case schedule.KindTutorial:
					summary.TutorialCount++
				case schedule.KindPractical:
					summary.PracticalCount++
				}
			}
		}
	}

	return summary
}
