package calculator

import (
	"testing"

	"RaidLedger/internal/config"
	"RaidLedger/internal/model"
)

func TestComputeNeeds_EmptyLoadout(t *testing.T) {
	calc := New(config.DefaultTables())
	needs := calc.ComputeNeeds(&model.Loadout{})

	for _, rt := range model.AllResourceTypes {
		if needs[rt] != 0 {
			t.Errorf("expected %s = 0 for empty loadout, got %d", rt, needs[rt])
		}
	}
}

func TestComputeNeeds_TomeOnlyHasNoPages(t *testing.T) {
	calc := New(config.DefaultTables())
	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotWeapon, Source: model.SourceTome},
		{Slot: model.SlotChest, Source: model.SourceTome},
		{Slot: model.SlotEarrings, Source: model.SourceTome},
	}}
	needs := calc.ComputeNeeds(loadout)

	want := 500 + 825 + 375
	if needs[model.ResourceTomestone] != want {
		t.Errorf("expected %d tomestones, got %d", want, needs[model.ResourceTomestone])
	}
	for _, rt := range model.AllResourceTypes {
		if rt == model.ResourceTomestone {
			continue
		}
		if needs[rt] != 0 {
			t.Errorf("tome-only loadout should not need %s, got %d", rt, needs[rt])
		}
	}
}

func TestComputeNeeds_AugmentedChest(t *testing.T) {
	// Alternate tier: chest costs 400 tomestones, fiber converts to 3 pages
	// on floor 3.
	tables := config.DefaultTables()
	tables.TomestoneCosts[model.SlotChest] = 400
	tables.UpgradeRates[model.ResourceReinforcedFiber] = config.PageCost{Floor: 3, Count: 3}
	calc := New(tables)

	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotChest, Source: model.SourceAugmentedTome},
	}}
	needs := calc.ComputeNeeds(loadout)

	if needs[model.ResourceTomestone] != 400 {
		t.Errorf("expected 400 tomestones, got %d", needs[model.ResourceTomestone])
	}
	if needs[model.ResourceReinforcedFiber] != 1 {
		t.Errorf("expected 1 reinforced fiber, got %d", needs[model.ResourceReinforcedFiber])
	}
	if needs[model.ResourcePageFloor3] != 3 {
		t.Errorf("expected 3 floor-3 pages, got %d", needs[model.ResourcePageFloor3])
	}
	// The raw material count stays alongside the converted pages.
	if needs[model.ResourceReinforcedFiber] == 0 {
		t.Error("raw material count must not be zeroed after conversion")
	}
}

func TestComputeNeeds_UpgradeMaterialPerCategory(t *testing.T) {
	calc := New(config.DefaultTables())

	tests := []struct {
		slot model.Slot
		want model.ResourceType
	}{
		{model.SlotHead, model.ResourceReinforcedFiber},
		{model.SlotLegs, model.ResourceReinforcedFiber},
		{model.SlotNecklace, model.ResourceHardenedFluid},
		{model.SlotRing2, model.ResourceHardenedFluid},
		{model.SlotWeapon, model.ResourceWeaponToken},
	}
	for _, tt := range tests {
		loadout := &model.Loadout{Items: []model.LoadoutItem{
			{Slot: tt.slot, Source: model.SourceAugmentedTome},
		}}
		needs := calc.ComputeNeeds(loadout)
		if needs[tt.want] != 1 {
			t.Errorf("slot %s: expected 1 %s, got %d", tt.slot, tt.want, needs[tt.want])
		}
	}
}

func TestComputeNeeds_SavagePages(t *testing.T) {
	calc := New(config.DefaultTables())
	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotEarrings, Source: model.SourceSavage}, // floor 1, 3 pages
		{Slot: model.SlotHead, Source: model.SourceSavage},     // floor 2, 4 pages
		{Slot: model.SlotChest, Source: model.SourceSavage},    // floor 3, 6 pages
		{Slot: model.SlotWeapon, Source: model.SourceSavage},   // floor 4, 8 pages
	}}
	needs := calc.ComputeNeeds(loadout)

	if needs[model.ResourceTomestone] != 0 {
		t.Errorf("savage items cost no tomestones, got %d", needs[model.ResourceTomestone])
	}
	for rt, want := range map[model.ResourceType]int{
		model.ResourcePageFloor1: 3,
		model.ResourcePageFloor2: 4,
		model.ResourcePageFloor3: 6,
		model.ResourcePageFloor4: 8,
	} {
		if needs[rt] != want {
			t.Errorf("expected %s = %d, got %d", rt, want, needs[rt])
		}
	}
}

func TestComputeNeeds_CraftedContributesNothing(t *testing.T) {
	calc := New(config.DefaultTables())
	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotChest, Source: model.SourceCrafted},
		{Slot: model.SlotLegs, Source: model.SourceCrafted},
	}}
	if total := calc.ComputeNeeds(loadout).Total(); total != 0 {
		t.Errorf("crafted-only loadout should need nothing, got total %d", total)
	}
}

func TestComputeNeeds_ConversionAddsToExistingPages(t *testing.T) {
	// A savage chest (6 floor-3 pages) plus an augmented head (1 fiber → 3
	// floor-3 pages) must stack in the same page bucket.
	calc := New(config.DefaultTables())
	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotChest, Source: model.SourceSavage},
		{Slot: model.SlotHead, Source: model.SourceAugmentedTome},
	}}
	needs := calc.ComputeNeeds(loadout)

	if needs[model.ResourcePageFloor3] != 6+3 {
		t.Errorf("expected 9 floor-3 pages, got %d", needs[model.ResourcePageFloor3])
	}
}

func TestSlotCosts(t *testing.T) {
	calc := New(config.DefaultTables())
	loadout := &model.Loadout{Items: []model.LoadoutItem{
		{Slot: model.SlotWeapon, Source: model.SourceAugmentedTome},
		{Slot: model.SlotChest, Source: model.SourceSavage},
		{Slot: model.SlotLegs, Source: model.SourceCrafted},
	}}
	costs := calc.SlotCosts(loadout)

	if costs[model.SlotWeapon] != 500 {
		t.Errorf("augmented weapon should cost its tomestone price 500, got %d", costs[model.SlotWeapon])
	}
	if costs[model.SlotChest] != 6 {
		t.Errorf("savage chest should cost its page count 6, got %d", costs[model.SlotChest])
	}
	cost, ok := costs[model.SlotLegs]
	if !ok {
		t.Fatal("crafted slot must still be listed")
	}
	if cost != 0 {
		t.Errorf("crafted slot should cost 0, got %d", cost)
	}
	if _, ok := costs[model.SlotFeet]; ok {
		t.Error("unequipped slot must not be listed")
	}
}
