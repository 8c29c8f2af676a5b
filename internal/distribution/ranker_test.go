package distribution

import (
	"reflect"
	"testing"

	"RaidLedger/internal/model"
)

func TestRankBySlot_DescendingCost(t *testing.T) {
	costs := map[int64]map[model.Slot]int{
		1: {model.SlotWeapon: 8},   // savage drop
		2: {model.SlotWeapon: 500}, // augmented tome, scarcer path
		3: {model.SlotWeapon: 500, model.SlotChest: 6},
	}
	ranked := RankBySlot(costs)

	// 500 before 8; equal costs break on ascending player ID.
	want := []int64{2, 3, 1}
	if !reflect.DeepEqual(ranked[model.SlotWeapon], want) {
		t.Errorf("weapon order = %v, want %v", ranked[model.SlotWeapon], want)
	}
	if !reflect.DeepEqual(ranked[model.SlotChest], []int64{3}) {
		t.Errorf("chest order = %v, want [3]", ranked[model.SlotChest])
	}
}

func TestRankBySlot_EmptySlots(t *testing.T) {
	ranked := RankBySlot(map[int64]map[model.Slot]int{
		7: {model.SlotWeapon: 500},
	})
	for _, slot := range model.AllSlots {
		if slot == model.SlotWeapon {
			continue
		}
		if len(ranked[slot]) != 0 {
			t.Errorf("slot %s should have no candidates, got %v", slot, ranked[slot])
		}
	}
}

func TestRankBySlot_Deterministic(t *testing.T) {
	costs := map[int64]map[model.Slot]int{
		5: {model.SlotRing1: 375},
		3: {model.SlotRing1: 375},
		9: {model.SlotRing1: 375},
	}
	first := RankBySlot(costs)
	for i := 0; i < 20; i++ {
		if got := RankBySlot(costs); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run %v", i, got, first)
		}
	}
	if !reflect.DeepEqual(first[model.SlotRing1], []int64{3, 5, 9}) {
		t.Errorf("tie-break should order by player ID: %v", first[model.SlotRing1])
	}
}

func TestRecordsFromRanking(t *testing.T) {
	ranking := map[model.Slot][]int64{
		model.SlotWeapon: {2, 1},
		model.SlotChest:  {1},
	}
	records := RecordsFromRanking(42, ranking)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	seen := make(map[model.Slot][]int)
	for _, rec := range records {
		if rec.SeasonID != 42 {
			t.Errorf("record season = %d, want 42", rec.SeasonID)
		}
		seen[rec.Slot] = append(seen[rec.Slot], rec.Rank)
	}
	// Ranks per slot form a 1..K permutation.
	if !reflect.DeepEqual(seen[model.SlotWeapon], []int{1, 2}) {
		t.Errorf("weapon ranks = %v, want [1 2]", seen[model.SlotWeapon])
	}
	if !reflect.DeepEqual(seen[model.SlotChest], []int{1}) {
		t.Errorf("chest ranks = %v, want [1]", seen[model.SlotChest])
	}
}
