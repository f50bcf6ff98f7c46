package cities

import (
	"testing"
)

func TestIndex_UpdateDedupesAndSorts(t *testing.T) {
	idx := NewIndex()
	idx.Update([]string{"Iasi", "Cluj-Napoca", " Iasi ", "", "Brasov"})

	got := idx.All()
	want := []string{"Brasov", "Cluj-Napoca", "Iasi"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if idx.LastReload().IsZero() {
		t.Error("Update must stamp the reload time")
	}
}

func TestIndex_Contains(t *testing.T) {
	idx := NewIndex()
	idx.Update([]string{"Iasi"})

	if !idx.Contains("iasi") {
		t.Error("Contains must be case-insensitive")
	}
	if idx.Contains("Cluj-Napoca") {
		t.Error("Contains must reject unknown cities")
	}
}

func TestIndex_AllIsCopy(t *testing.T) {
	idx := NewIndex()
	idx.Update([]string{"Iasi"})

	list := idx.All()
	list[0] = "mutated"

	if idx.All()[0] != "Iasi" {
		t.Error("All must return a defensive copy")
	}
}
