// Package schedule holds the solved-output types spec.md §6 calls
// "Solution output": MasterSchedule, ClassBlock, AssistantAssignments
// and the run summary, plus the read-only query helpers property
// tests and downstream renderers use. A MasterSchedule is write-once,
// produced by internal/search, and never mutated by internal/assistant
// (spec.md §5 "Ordering").
package schedule

import "github.com/campusforge/timetablecore/internal/catalog"

// ClassBlock is one scheduled class-hour in the solution.
type ClassBlock struct {
	Subject  catalog.SubjectID
	Name     string
	Course   string
	Semester int
	Section  string
	Category catalog.Category

	Kind Kind

	PrimaryTeacher string
	Teachers       []string // primary + co-teachers present this hour

	Room     string
	RoomKind catalog.RoomKind

	Day  int
	Hour int

	ContinuationOfBlock bool // true for the t+1 record of a 2-hour practical block
}

// Kind mirrors catalog.Kind using the external vocabulary spec.md §6
// specifies for ClassBlock.Kind (Lecture|Tutorial|Practical).
type Kind string

const (
	KindLecture   Kind = "Lecture"
	KindTutorial  Kind = "Tutorial"
	KindPractical Kind = "Practical"
)

// FromCatalogKind converts a catalog.Kind to the external Kind vocabulary.
func FromCatalogKind(k catalog.Kind) Kind {
	switch k {
	case catalog.KindLecture:
		return KindLecture
	case catalog.KindTutorial:
		return KindTutorial
	case catalog.KindPractical:
		return KindPractical
	default:
		return Kind(k)
	}
}

// MasterSchedule maps day -> hour -> the blocks scheduled then.
type MasterSchedule map[int]map[int][]ClassBlock

// NewMasterSchedule returns an empty MasterSchedule.
func NewMasterSchedule() MasterSchedule {
	return make(MasterSchedule)
}

// Add inserts b into s, keyed by its own Day/Hour.
func (s MasterSchedule) Add(b ClassBlock) {
	if s[b.Day] == nil {
		s[b.Day] = make(map[int][]ClassBlock)
	}
	s[b.Day][b.Hour] = append(s[b.Day][b.Hour], b)
}

// At returns every block scheduled at (day, hour).
func (s MasterSchedule) At(day, hour int) []ClassBlock {
	return s[day][hour]
}

// AssistantKey identifies the practical block an assistant list
// belongs to: the subject and the slot its 2-hour block starts at.
type AssistantKey struct {
	Subject   catalog.SubjectID
	StartSlot catalog.Slot
}

// AssistantAssignments maps a practical block to the teachers
// assigned to it as assistants, additive and never mutating the
// MasterSchedule it was derived from.
type AssistantAssignments map[AssistantKey][]string

// TeacherWorkload maps teacher initials to their scheduled hour count.
type TeacherWorkload map[string]int

// Summary carries the aggregate statistics spec.md §6 lists:
// optimality status, latest slot used, and per-kind counts.
type Summary struct {
	Status          string
	LatestSlotUsed  catalog.Slot
	LectureCount    int
	TutorialCount   int
	PracticalCount  int
	ObjectiveValue  int
}
