package varfactory

import (
	"testing"

	"github.com/campusforge/timetablecore/internal/catalog"
	"github.com/campusforge/timetablecore/internal/localsearch"
)

func grid(t *testing.T) catalog.TimeGrid {
	t.Helper()
	g, err := catalog.NewTimeGrid([]string{"MON", "TUE"}, []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestPermittedSlotsNonReservedAllowsEveryUnexcludedSlot(t *testing.T) {
	g := grid(t)
	cat := catalog.Catalog{
		Grid: g,
		Rooms: []catalog.Room{
			{ID: "R1", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
		},
		Subjects: []catalog.Subject{
			{ID: "s1", Semester: 1, Year: 1, Category: catalog.CategoryCoreRequired,
				Taught: catalog.Hours{Lecture: 2, Tutorial: 0, Practical: 0}},
		},
	}
	model := localsearch.New(localsearch.DefaultConfig())
	f := New(model, cat)

	permitted := f.Permitted["s1"][catalog.KindLecture]
	if len(permitted) != g.TotalSlots() {
		t.Fatalf("expected all %d slots permitted, got %d", g.TotalSlots(), len(permitted))
	}
}

func TestPermittedSlotsReservedCategoryRestrictsToWindow(t *testing.T) {
	g := grid(t)
	lectureWindow := map[catalog.Slot]bool{g.Slot(0, 0): true, g.Slot(0, 1): true}
	labWindow := map[catalog.Slot]bool{g.Slot(1, 0): true}

	cat := catalog.Catalog{
		Grid: g,
		Subjects: []catalog.Subject{
			{ID: "ge1", Semester: 1, Year: 1, Category: catalog.CategoryGenericElective,
				Taught: catalog.Hours{Lecture: 2, Tutorial: 0, Practical: 1}},
		},
	}
	cat = withReservedWindow(cat, catalog.ReservedWindow{
		Category: catalog.CategoryGenericElective, Year: 1, Lecture: lectureWindow, Lab: labWindow,
	})

	model := localsearch.New(localsearch.DefaultConfig())
	f := New(model, cat)

	lecturePermitted := f.Permitted["ge1"][catalog.KindLecture]
	if len(lecturePermitted) != len(lectureWindow) {
		t.Fatalf("expected lecture permitted slots to match declared window, got %d want %d",
			len(lecturePermitted), len(lectureWindow))
	}

	practicalPermitted := f.Permitted["ge1"][catalog.KindPractical]
	// GE practicals may use both the lab sub-window and the lecture sub-window.
	if len(practicalPermitted) != len(labWindow)+len(lectureWindow) {
		t.Fatalf("expected GE practical to permit lab ∪ lecture slots, got %d want %d",
			len(practicalPermitted), len(labWindow)+len(lectureWindow))
	}
}

func TestCandidateRoomsSortedAscendingByID(t *testing.T) {
	g := grid(t)
	cat := catalog.Catalog{
		Grid: g,
		Rooms: []catalog.Room{
			{ID: "R2", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
			{ID: "R1", Kind: catalog.RoomKindClassroom, MinCap: 10, MaxCap: 80},
		},
		Subjects: []catalog.Subject{
			{ID: "s1", Semester: 1, Year: 1, Category: catalog.CategoryCoreRequired,
				Taught: catalog.Hours{Lecture: 1}},
		},
	}
	model := localsearch.New(localsearch.DefaultConfig())
	f := New(model, cat)

	var anyKey SlotKey
	for k := range f.ScheduleVar {
		anyKey = k
		break
	}
	rooms := f.CandidateRooms[anyKey]
	if len(rooms) != 2 || rooms[0] != "R1" || rooms[1] != "R2" {
		t.Fatalf("expected rooms sorted [R1 R2], got %v", rooms)
	}
}

// withReservedWindow is a test helper: Catalog.Reserved uses an
// unexported key type, so a window is registered through a minimal
// builder round-trip instead of a literal map.
func withReservedWindow(cat catalog.Catalog, w catalog.ReservedWindow) catalog.Catalog {
	b := catalog.NewBuilder(catalog.Config{
		Grid:            cat.Grid,
		ReservedWindows: []catalog.ReservedWindow{w},
	})
	// Build with no rows just to obtain a Catalog carrying the reserved
	// windows; then graft the caller's subjects onto it.
	built, _ := b.Build(nil)
	built.Subjects = cat.Subjects
	built.Rooms = cat.Rooms
	return built
}
