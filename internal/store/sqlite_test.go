package store

import (
	"context"
	"errors"
	"testing"

	"RaidLedger/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedSeason(t *testing.T, s *SQLiteStore) (seasonID, playerID int64) {
	t.Helper()
	ctx := context.Background()
	seasonID, err := s.CreateSeason(ctx, "Arcadion", model.DistributionPriority)
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	playerID, err = s.CreatePlayer(ctx, "alpha", "WAR")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return seasonID, playerID
}

func TestGetSeason_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetSeason(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasonRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, _ := seedSeason(t, s)

	season, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}
	if season.Name != "Arcadion" || season.Method != model.DistributionPriority {
		t.Errorf("unexpected season: %+v", season)
	}
	if !season.Active {
		t.Error("new seasons default to active")
	}

	active, err := s.ListActiveSeasons(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != seasonID {
		t.Errorf("active seasons = %+v", active)
	}
}

func TestLoadoutRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, playerID := seedSeason(t, s)

	loadout := &model.Loadout{
		PlayerID: playerID,
		SeasonID: seasonID,
		Items: []model.LoadoutItem{
			{Slot: model.SlotWeapon, ItemName: "Axe of Trials", Source: model.SourceAugmentedTome, Level: 730},
			{Slot: model.SlotChest, ItemName: "Mail of Trials", Source: model.SourceSavage, Level: 730},
		},
	}
	if err := s.SaveFinalLoadout(ctx, loadout); err != nil {
		t.Fatalf("save loadout: %v", err)
	}

	got, err := s.GetFinalLoadout(ctx, playerID, seasonID)
	if err != nil {
		t.Fatalf("get loadout: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	bySlot := make(map[model.Slot]model.LoadoutItem)
	for _, item := range got.Items {
		bySlot[item.Slot] = item
	}
	if item := bySlot[model.SlotWeapon]; item.ItemName != "Axe of Trials" || item.Source != model.SourceAugmentedTome {
		t.Errorf("weapon item = %+v", item)
	}

	roster, err := s.ListRoster(ctx, seasonID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Nickname != "alpha" || roster[0].Job != "WAR" {
		t.Errorf("roster = %+v", roster)
	}
}

func TestSaveFinalLoadout_Replaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, playerID := seedSeason(t, s)

	first := &model.Loadout{PlayerID: playerID, SeasonID: seasonID, Items: []model.LoadoutItem{
		{Slot: model.SlotWeapon, ItemName: "Old Axe", Source: model.SourceTome},
		{Slot: model.SlotHead, ItemName: "Old Helm", Source: model.SourceTome},
	}}
	if err := s.SaveFinalLoadout(ctx, first); err != nil {
		t.Fatalf("save first loadout: %v", err)
	}

	second := &model.Loadout{PlayerID: playerID, SeasonID: seasonID, Items: []model.LoadoutItem{
		{Slot: model.SlotWeapon, ItemName: "New Axe", Source: model.SourceSavage},
	}}
	if err := s.SaveFinalLoadout(ctx, second); err != nil {
		t.Fatalf("save second loadout: %v", err)
	}

	got, err := s.GetFinalLoadout(ctx, playerID, seasonID)
	if err != nil {
		t.Fatalf("get loadout: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("old items must be gone, got %d items", len(got.Items))
	}
	if got.Items[0].ItemName != "New Axe" {
		t.Errorf("item = %+v", got.Items[0])
	}
}

func TestGetFinalLoadout_NotFound(t *testing.T) {
	s := openTestStore(t)
	seasonID, playerID := seedSeason(t, s)

	_, err := s.GetFinalLoadout(context.Background(), playerID, seasonID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertNeeds_Overwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, playerID := seedSeason(t, s)

	needs := model.NewNeedsVector()
	needs[model.ResourceTomestone] = 1500
	needs[model.ResourcePageFloor2] = 4
	if err := s.UpsertNeeds(ctx, playerID, seasonID, needs); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	needs[model.ResourceTomestone] = 2000
	needs[model.ResourcePageFloor2] = 0
	if err := s.UpsertNeeds(ctx, playerID, seasonID, needs); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetNeeds(ctx, playerID, seasonID)
	if err != nil {
		t.Fatalf("get needs: %v", err)
	}
	if got[model.ResourceTomestone] != 2000 {
		t.Errorf("tomestone = %d, want 2000", got[model.ResourceTomestone])
	}
	if got[model.ResourcePageFloor2] != 0 {
		t.Errorf("floor 2 pages = %d, want 0", got[model.ResourcePageFloor2])
	}
}

func TestReplacePriorities_FullSwap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, playerID := seedSeason(t, s)
	otherID, err := s.CreatePlayer(ctx, "bravo", "SGE")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	first := []model.PriorityRecord{
		{SeasonID: seasonID, PlayerID: playerID, Slot: model.SlotWeapon, Rank: 1},
		{SeasonID: seasonID, PlayerID: otherID, Slot: model.SlotWeapon, Rank: 2},
		{SeasonID: seasonID, PlayerID: otherID, Slot: model.SlotChest, Rank: 1},
	}
	if err := s.ReplacePriorities(ctx, seasonID, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []model.PriorityRecord{
		{SeasonID: seasonID, PlayerID: otherID, Slot: model.SlotWeapon, Rank: 1},
	}
	if err := s.ReplacePriorities(ctx, seasonID, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := s.LoadPriorities(ctx, seasonID)
	if err != nil {
		t.Fatalf("load priorities: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("old records must be gone, got %d", len(got))
	}
	if got[0].PlayerID != otherID || got[0].Slot != model.SlotWeapon || got[0].Rank != 1 {
		t.Errorf("record = %+v", got[0])
	}
}

func TestLoadPriorities_OrderedBySlotThenRank(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seasonID, playerID := seedSeason(t, s)
	otherID, err := s.CreatePlayer(ctx, "bravo", "SGE")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	// Insert out of rank order on purpose.
	records := []model.PriorityRecord{
		{SeasonID: seasonID, PlayerID: otherID, Slot: model.SlotChest, Rank: 2},
		{SeasonID: seasonID, PlayerID: playerID, Slot: model.SlotChest, Rank: 1},
	}
	if err := s.ReplacePriorities(ctx, seasonID, records); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.LoadPriorities(ctx, seasonID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Rank != 1 || got[1].Rank != 2 {
		t.Errorf("records not rank-ordered: %+v", got)
	}
}
