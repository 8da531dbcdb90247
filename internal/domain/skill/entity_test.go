package skill

import (
	"testing"

	"github.com/google/uuid"
)

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := UniqueIDs([]uuid.UUID{a, uuid.Nil, b, a, b})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestSortByName(t *testing.T) {
	items := []Skill{{Name: "python"}, {Name: "Go"}, {Name: "Docker"}}
	SortByName(items)
	if items[0].Name != "Docker" || items[1].Name != "Go" || items[2].Name != "python" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
