package catalog

import (
	"fmt"
	"sort"
)

// CategoryRequirements maps a Category to the (lecture, tutorial,
// practical) hour totals a subject of that category must receive,
// independent of which teachers actually supply them.
type CategoryRequirements map[Category]Hours

// Config bundles the build-time configuration a Builder needs beyond
// the rows themselves: the time grid, the room and teacher rosters,
// section strengths, reserved windows and the category requirement
// table. It is built once by the caller and never mutated afterward,
// matching the "no ambient global state" design note in spec.md §9.
type Config struct {
	Grid                 TimeGrid
	Rooms                []Room
	Teachers             []Teacher
	Strengths            []SectionStrength
	ReservedWindows      []ReservedWindow
	CategoryRequirements CategoryRequirements
	SemestersPerYear     int // default 2 if zero
	SemesterParity       string // "odd" or "even"
}

// Builder assembles a Catalog from rows and configuration, collecting
// every structural problem it finds rather than stopping at the
// first one (spec.md §7 propagation policy).
type Builder struct {
	cfg      Config
	teachers map[string]Teacher // by initials
	strength map[CohortKey]int
	reserved map[reservedKey]ReservedWindow
	errs     []string
}

type reservedKey struct {
	Category Category
	Year     int
}

// NewBuilder prepares lookup tables from cfg. It does not validate
// the rows yet; call Build for that.
func NewBuilder(cfg Config) *Builder {
	if cfg.SemestersPerYear <= 0 {
		cfg.SemestersPerYear = 2
	}
	b := &Builder{
		cfg:      cfg,
		teachers: make(map[string]Teacher, len(cfg.Teachers)),
		strength: make(map[CohortKey]int, len(cfg.Strengths)),
		reserved: make(map[reservedKey]ReservedWindow, len(cfg.ReservedWindows)),
	}
	for _, t := range cfg.Teachers {
		b.teachers[t.Initials] = t
	}
	for _, s := range cfg.Strengths {
		b.strength[CohortKey{Course: s.Course.Code, Semester: s.Semester, Section: s.Section}] = s.Students
	}
	for _, w := range cfg.ReservedWindows {
		b.reserved[reservedKey{Category: w.Category, Year: w.Year}] = w
	}
	return b
}

func (b *Builder) yearOf(semester int) int {
	return (semester-1)/b.cfg.SemestersPerYear + 1
}

// Build parses and expands rows into a Catalog. Every structural
// problem is appended to a single aggregate error; the Catalog
// returned alongside a non-nil error is the zero Catalog.
func (b *Builder) Build(rows []Row) (Catalog, error) {
	b.errs = nil

	var subjects []Subject
	for i, row := range rows {
		parsed, err := ParseRow(row)
		if err != nil {
			b.errs = append(b.errs, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		subs, err := b.expandRow(parsed)
		if err != nil {
			b.errs = append(b.errs, fmt.Sprintf("row %d (%s): %v", i, parsed.subject, err))
			continue
		}
		subjects = append(subjects, subs...)
	}

	b.checkSectionRepeats(subjects)
	b.checkKnownTeachers(subjects)
	b.checkStudentStrengths(subjects)

	if len(b.errs) > 0 {
		sort.Strings(b.errs)
		return Catalog{}, &BuildError{Problems: b.errs}
	}

	return Catalog{
		Grid:     b.cfg.Grid,
		Rooms:    append([]Room(nil), b.cfg.Rooms...),
		Teachers: b.teachers,
		Reserved: b.reserved,
		Subjects: subjects,
	}, nil
}

// expandRow turns one parsed row into one or more Subjects: one per
// (merged course) x (split-teaching partition).
func (b *Builder) expandRow(p parsedRow) ([]Subject, error) {
	courses := p.courses
	if len(courses) == 0 {
		courses = []string{""}
	}

	isMerge := len(courses) > 1
	isSplit := len(p.teacherSets) > 1

	required := b.cfg.CategoryRequirements[p.category]

	var out []Subject
	for _, course := range courses {
		var mergeGroupID string
		if isMerge {
			mergeGroupID = fmt.Sprintf("MERGE|%d|%s|%s|%s", p.semester, p.subject, p.category, p.teacherSets[0][0])
		}

		for _, ts := range p.teacherSets {
			primary := ts[0]
			co := append([]string(nil), ts[1:]...)

			var splitGroupID string
			var partition *Hours
			if isSplit {
				splitGroupID = fmt.Sprintf("SPLIT|%s|%d|%s|%s", course, p.semester, p.section, p.subject)
				idx := indexOfTeacherSet(p.teacherSets, ts)
				h := p.hourSets[idx]
				partition = &h
			}

			taught := p.hourSets[indexOfTeacherSet(p.teacherSets, ts)]

			students := b.strength[CohortKey{Course: course, Semester: p.semester, Section: p.section}]

			id := NewSubjectID(course, p.subject, string(p.category), p.semester, p.section, teacherIDSuffix(isSplit, primary))

			out = append(out, Subject{
				ID:             id,
				Course:         CourseKey{Code: course},
				Semester:       p.semester,
				Section:        p.section,
				Year:           b.yearOf(p.semester),
				Name:           p.subject,
				Category:       p.category,
				Department:     p.department,
				HasLab:         p.hasLab,
				LabDept:        p.department,
				Required:       required,
				Taught:         taught,
				PrimaryTeacher: primary,
				CoTeachers:     co,
				MergeGroupID:   mergeGroupID,
				SplitGroupID:   splitGroupID,
				SplitPartition: partition,
				Students:       students,
			})
		}
	}

	return out, nil
}

func teacherIDSuffix(isSplit bool, primary string) string {
	if !isSplit {
		return ""
	}
	return primary
}

func indexOfTeacherSet(sets [][]string, target []string) int {
	for i, s := range sets {
		if len(s) == len(target) {
			match := true
			for j := range s {
				if s[j] != target[j] {
					match = false
					break
				}
			}
			if match {
				return i
			}
		}
	}
	return 0
}

// checkSectionRepeats enforces the §7 rule: section letter is
// required whenever the same (course, semester, subject, category)
// appears more than once and is not a merge/split expansion of a
// single row.
func (b *Builder) checkSectionRepeats(subjects []Subject) {
	seen := make(map[string][]string)     // key without section -> sections seen
	countedGroup := make(map[string]bool) // key|mergeOrSplitGroupID: a single row's merge/split
	for _, s := range subjects {           // expansion contributes one section, not one per member
		key := fmt.Sprintf("%s|%d|%s|%s", s.Course.Code, s.Semester, s.Name, s.Category)
		groupID := s.MergeGroupID
		if groupID == "" {
			groupID = s.SplitGroupID
		}
		if groupID != "" {
			dedupKey := key + "|" + groupID
			if countedGroup[dedupKey] {
				continue
			}
			countedGroup[dedupKey] = true
		}
		seen[key] = append(seen[key], s.Section)
	}
	for key, sections := range seen {
		if len(sections) <= 1 {
			continue
		}
		for _, sec := range sections {
			if sec == "" {
				b.errs = append(b.errs, fmt.Sprintf("subject %q repeats across rows but a row has no section letter", key))
				break
			}
		}
	}
}

func (b *Builder) checkKnownTeachers(subjects []Subject) {
	for _, s := range subjects {
		for _, initials := range s.AllTeachers() {
			if _, ok := b.teachers[initials]; !ok {
				b.errs = append(b.errs, fmt.Sprintf("subject %q: unknown teacher %q", s.Name, initials))
			}
		}
	}
}

func (b *Builder) checkStudentStrengths(subjects []Subject) {
	for _, s := range subjects {
		if s.Students <= 0 && (s.Category.IsReserved() || s.Course.Code != "") {
			b.errs = append(b.errs, fmt.Sprintf("subject %q (%s sem %d sec %q): missing student strength",
				s.Name, s.Course.Code, s.Semester, s.Section))
		}
	}
}

// BuildError aggregates every structural problem found while building
// a Catalog, per spec.md §7's "collect then abort" propagation policy.
type BuildError struct {
	Problems []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("catalog: %d structural problem(s) found (first: %s)", len(e.Problems), e.Problems[0])
}
