package config

import (
	"fmt"

	"RaidLedger/internal/model"
)

// PageCost describes a savage drop's page exchange: which floor's pages and
// how many of them buy the item.
type PageCost struct {
	Floor int `yaml:"floor"`
	Count int `yaml:"count"`
}

// FloorDrops is one raid floor and the slots it drops, in drop order.
type FloorDrops struct {
	Floor int          `yaml:"floor"`
	Slots []model.Slot `yaml:"slots"`
}

// Tables holds the static per-tier cost configuration. Values come from the
// yaml config with built-in defaults for the current tier, so a new season's
// numbers are a config edit rather than a code change.
type Tables struct {
	// TomestoneCosts maps slot → tomestone price of the tome item.
	TomestoneCosts map[model.Slot]int `yaml:"tomestone_costs"`
	// PageCosts maps slot → page exchange for the savage drop.
	PageCosts map[model.Slot]PageCost `yaml:"page_costs"`
	// UpgradeRates maps upgrade material → its direct page exchange.
	UpgradeRates map[model.ResourceType]PageCost `yaml:"upgrade_rates"`
	// DropTable lists floors in clear order with their slot drops.
	DropTable []FloorDrops `yaml:"drop_table"`
}

// DefaultTables returns the built-in tables for the current savage tier.
func DefaultTables() Tables {
	t := Tables{}
	t.applyDefaults()
	return t
}

func (t *Tables) applyDefaults() {
	if t.TomestoneCosts == nil {
		t.TomestoneCosts = map[model.Slot]int{
			model.SlotWeapon:   500,
			model.SlotHead:     495,
			model.SlotChest:    825,
			model.SlotHands:    495,
			model.SlotLegs:     825,
			model.SlotFeet:     495,
			model.SlotEarrings: 375,
			model.SlotNecklace: 375,
			model.SlotBracelet: 375,
			model.SlotRing1:    375,
			model.SlotRing2:    375,
		}
	}
	if t.PageCosts == nil {
		t.PageCosts = map[model.Slot]PageCost{
			model.SlotEarrings: {Floor: 1, Count: 3},
			model.SlotNecklace: {Floor: 1, Count: 3},
			model.SlotBracelet: {Floor: 1, Count: 3},
			model.SlotRing1:    {Floor: 1, Count: 3},
			model.SlotRing2:    {Floor: 1, Count: 3},
			model.SlotHead:     {Floor: 2, Count: 4},
			model.SlotHands:    {Floor: 2, Count: 4},
			model.SlotFeet:     {Floor: 2, Count: 4},
			model.SlotChest:    {Floor: 3, Count: 6},
			model.SlotLegs:     {Floor: 3, Count: 6},
			model.SlotWeapon:   {Floor: 4, Count: 8},
		}
	}
	if t.UpgradeRates == nil {
		t.UpgradeRates = map[model.ResourceType]PageCost{
			model.ResourceHardenedFluid:   {Floor: 2, Count: 2},
			model.ResourceReinforcedFiber: {Floor: 3, Count: 3},
			model.ResourceWeaponToken:     {Floor: 2, Count: 4},
		}
	}
	if t.DropTable == nil {
		t.DropTable = []FloorDrops{
			{Floor: 1, Slots: []model.Slot{model.SlotEarrings, model.SlotNecklace, model.SlotBracelet, model.SlotRing1, model.SlotRing2}},
			{Floor: 2, Slots: []model.Slot{model.SlotHead, model.SlotHands, model.SlotFeet}},
			{Floor: 3, Slots: []model.Slot{model.SlotChest, model.SlotLegs}},
			{Floor: 4, Slots: []model.Slot{model.SlotWeapon}},
		}
	}
}

// Validate checks the tables are internally consistent.
func (t *Tables) Validate() error {
	for slot, cost := range t.TomestoneCosts {
		if cost <= 0 {
			return fmt.Errorf("tables.tomestone_costs[%s] must be positive", slot)
		}
	}
	for slot, pc := range t.PageCosts {
		if _, ok := model.PageResourceForFloor(pc.Floor); !ok {
			return fmt.Errorf("tables.page_costs[%s]: unknown floor %d", slot, pc.Floor)
		}
		if pc.Count <= 0 {
			return fmt.Errorf("tables.page_costs[%s]: count must be positive", slot)
		}
	}
	for mat, pc := range t.UpgradeRates {
		if _, ok := model.PageResourceForFloor(pc.Floor); !ok {
			return fmt.Errorf("tables.upgrade_rates[%s]: unknown floor %d", mat, pc.Floor)
		}
		if pc.Count <= 0 {
			return fmt.Errorf("tables.upgrade_rates[%s]: count must be positive", mat)
		}
	}
	if len(t.DropTable) == 0 {
		return fmt.Errorf("tables.drop_table must not be empty")
	}
	for _, fd := range t.DropTable {
		if len(fd.Slots) == 0 {
			return fmt.Errorf("tables.drop_table floor %d has no slots", fd.Floor)
		}
	}
	return nil
}
