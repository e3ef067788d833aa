package schedule

import (
	"testing"

	"github.com/campusforge/timetablecore/internal/catalog"
)

func TestMasterScheduleAddAndAt(t *testing.T) {
	s := NewMasterSchedule()
	b := ClassBlock{Subject: "s1", Name: "Alpha", Kind: KindLecture, Day: 0, Hour: 2}
	s.Add(b)

	got := s.At(0, 2)
	if len(got) != 1 || got[0].Name != "Alpha" {
		t.Fatalf("expected one block named Alpha at (0,2), got %+v", got)
	}
	if len(s.At(0, 3)) != 0 {
		t.Fatal("expected no blocks at an untouched (day, hour)")
	}
}

func TestMasterScheduleAddAccumulatesAtSameSlot(t *testing.T) {
	s := NewMasterSchedule()
	s.Add(ClassBlock{Subject: "s1", Kind: KindLecture, Day: 1, Hour: 0})
	s.Add(ClassBlock{Subject: "s2", Kind: KindPractical, Day: 1, Hour: 0})

	got := s.At(1, 0)
	if len(got) != 2 {
		t.Fatalf("expected two blocks sharing a slot, got %d", len(got))
	}
}

func TestFromCatalogKindMapsAllThreeKinds(t *testing.T) {
	cases := map[catalog.Kind]Kind{
		catalog.KindLecture:   KindLecture,
		catalog.KindTutorial:  KindTutorial,
		catalog.KindPractical: KindPractical,
	}
	for in, want := range cases {
		if got := FromCatalogKind(in); got != want {
			t.Fatalf("FromCatalogKind(%s) = %s, want %s", in, got, want)
		}
	}
}
