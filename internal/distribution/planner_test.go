package distribution

import (
	"encoding/json"
	"testing"

	"RaidLedger/internal/config"
	"RaidLedger/internal/model"
)

func testPlanner() *Planner {
	return NewPlanner(config.DefaultTables().DropTable, NewAllocator(2))
}

func TestGenerate_WeaponAlternatesAcrossWeeks(t *testing.T) {
	ranked := map[model.Slot][]Candidate{
		model.SlotWeapon: {
			{PlayerID: 1, PlayerName: "alpha", OriginalRank: 1},
			{PlayerID: 2, PlayerName: "bravo", OriginalRank: 2},
		},
	}
	plan := testPlanner().Generate(1, 2, ranked)

	week1 := plan.Weeks[0].Floors[4]
	week2 := plan.Weeks[1].Floors[4]
	if len(week1) != 1 || len(week2) != 1 {
		t.Fatalf("expected one weapon award per week, got %d and %d", len(week1), len(week2))
	}
	if week1[0].PlayerID != 1 {
		t.Errorf("week 1 weapon should go to rank 1, got player %d", week1[0].PlayerID)
	}
	if week2[0].PlayerID != 2 {
		t.Errorf("week 2 weapon should go to rank 2 after rank 1 won, got player %d", week2[0].PlayerID)
	}
}

func TestGenerate_SkipsSlotsNobodyNeeds(t *testing.T) {
	ranked := map[model.Slot][]Candidate{
		model.SlotEarrings: {{PlayerID: 1, PlayerName: "alpha", OriginalRank: 1}},
	}
	plan := testPlanner().Generate(1, 1, ranked)

	week := plan.Weeks[0]
	if len(week.Floors[1]) != 1 {
		t.Errorf("floor 1 should award only earrings, got %v", week.Floors[1])
	}
	for _, floor := range []int{2, 3, 4} {
		if len(week.Floors[floor]) != 0 {
			t.Errorf("floor %d should have no awards, got %v", floor, week.Floors[floor])
		}
	}
}

func TestGenerate_SameSlotCanRepeat(t *testing.T) {
	// A single weapon candidate wins it every single week; there is no
	// per-slot cap.
	ranked := map[model.Slot][]Candidate{
		model.SlotWeapon: {{PlayerID: 1, PlayerName: "alpha", OriginalRank: 1}},
	}
	plan := testPlanner().Generate(1, 5, ranked)

	for _, week := range plan.Weeks {
		if len(week.Floors[4]) != 1 || week.Floors[4][0].PlayerID != 1 {
			t.Fatalf("week %d: sole candidate should win the weapon, got %v", week.Week, week.Floors[4])
		}
	}
	if plan.Acquisitions[1] != 5 {
		t.Errorf("expected 5 acquisitions, got %d", plan.Acquisitions[1])
	}
}

func TestGenerate_LedgerThreadsThroughFloors(t *testing.T) {
	// Player 1 tops every accessory ranking but may only take the first
	// drop of week 1; the rest spread to the zero-count players.
	ranked := map[model.Slot][]Candidate{}
	for _, slot := range []model.Slot{model.SlotEarrings, model.SlotNecklace, model.SlotBracelet} {
		ranked[slot] = []Candidate{
			{PlayerID: 1, PlayerName: "alpha", OriginalRank: 1},
			{PlayerID: 2, PlayerName: "bravo", OriginalRank: 2},
			{PlayerID: 3, PlayerName: "charlie", OriginalRank: 3},
		}
	}
	plan := testPlanner().Generate(1, 1, ranked)

	floor1 := plan.Weeks[0].Floors[1]
	if len(floor1) != 3 {
		t.Fatalf("expected 3 accessory awards, got %d", len(floor1))
	}
	winners := []int64{floor1[0].PlayerID, floor1[1].PlayerID, floor1[2].PlayerID}
	if winners[0] != 1 || winners[1] != 2 || winners[2] != 3 {
		t.Errorf("expected awards to spread 1,2,3 within the week, got %v", winners)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ranked := map[model.Slot][]Candidate{}
	for _, slot := range model.AllSlots {
		ranked[slot] = []Candidate{
			{PlayerID: 1, PlayerName: "alpha", OriginalRank: 1},
			{PlayerID: 2, PlayerName: "bravo", OriginalRank: 2},
			{PlayerID: 3, PlayerName: "charlie", OriginalRank: 3},
		}
	}
	planner := testPlanner()

	first, err := json.Marshal(planner.Generate(1, 12, ranked))
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := json.Marshal(planner.Generate(1, 12, ranked))
		if err != nil {
			t.Fatalf("marshal plan: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("run %d produced a different plan", i)
		}
	}
}

func TestGenerate_OriginalRankPreservedInAwards(t *testing.T) {
	ranked := map[model.Slot][]Candidate{
		model.SlotWeapon: {
			{PlayerID: 5, PlayerName: "echo", OriginalRank: 1},
			{PlayerID: 6, PlayerName: "foxtrot", OriginalRank: 2},
		},
	}
	plan := testPlanner().Generate(1, 2, ranked)

	if got := plan.Weeks[1].Floors[4][0].OriginalRank; got != 2 {
		t.Errorf("award should carry the pre-adjustment rank 2, got %d", got)
	}
}
