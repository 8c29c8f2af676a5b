package calculator

import (
	"RaidLedger/internal/config"
	"RaidLedger/internal/model"
)

// Calculator turns a target loadout into the currencies required to finish it.
type Calculator struct {
	Tables config.Tables
}

// New creates a Calculator using the given cost tables.
func New(tables config.Tables) *Calculator {
	return &Calculator{Tables: tables}
}

// ComputeNeeds walks every equipped item and accumulates the tracked
// currencies. An empty loadout yields an all-zero vector.
//
// After the per-item pass, every accumulated upgrade material is also
// converted into its page equivalent and ADDED to the page totals. The raw
// material counts stay in the vector: the two views coexist and the consumer
// decides which one to read.
func (c *Calculator) ComputeNeeds(loadout *model.Loadout) model.NeedsVector {
	needs := model.NewNeedsVector()

	for _, item := range loadout.Items {
		switch item.Source {
		case model.SourceAugmentedTome:
			if cost, ok := c.Tables.TomestoneCosts[item.Slot]; ok {
				needs[model.ResourceTomestone] += cost
			}
			if mat, ok := upgradeMaterialFor(item.Slot); ok {
				needs[mat]++
			}
		case model.SourceTome:
			if cost, ok := c.Tables.TomestoneCosts[item.Slot]; ok {
				needs[model.ResourceTomestone] += cost
			}
		case model.SourceSavage:
			if pc, ok := c.Tables.PageCosts[item.Slot]; ok {
				if page, ok := model.PageResourceForFloor(pc.Floor); ok {
					needs[page] += pc.Count
				}
			}
		case model.SourceCrafted:
			// nothing tracked
		}
	}

	for _, mat := range []model.ResourceType{
		model.ResourceHardenedFluid,
		model.ResourceReinforcedFiber,
		model.ResourceWeaponToken,
	} {
		if needs[mat] == 0 {
			continue
		}
		rate, ok := c.Tables.UpgradeRates[mat]
		if !ok {
			continue
		}
		if page, ok := model.PageResourceForFloor(rate.Floor); ok {
			needs[page] += needs[mat] * rate.Count
		}
	}

	return needs
}

// SlotCosts returns each equipped slot's acquisition cost, the value the
// ranking sorts on. Tome and augmented items cost their tomestone price,
// savage items their page count, crafted items zero (still listed, so a
// crafted-only player ranks last instead of not at all).
func (c *Calculator) SlotCosts(loadout *model.Loadout) map[model.Slot]int {
	costs := make(map[model.Slot]int, len(loadout.Items))
	for _, item := range loadout.Items {
		cost := 0
		switch item.Source {
		case model.SourceTome, model.SourceAugmentedTome:
			cost = c.Tables.TomestoneCosts[item.Slot]
		case model.SourceSavage:
			cost = c.Tables.PageCosts[item.Slot].Count
		}
		costs[item.Slot] = cost
	}
	return costs
}

// upgradeMaterialFor maps a slot category to the material its augmented
// variant consumes: body armor takes reinforced fiber, accessories hardened
// fluid, the weapon its own token.
func upgradeMaterialFor(slot model.Slot) (model.ResourceType, bool) {
	switch {
	case model.BodySlots[slot]:
		return model.ResourceReinforcedFiber, true
	case model.AccessorySlots[slot]:
		return model.ResourceHardenedFluid, true
	case slot == model.SlotWeapon:
		return model.ResourceWeaponToken, true
	default:
		return "", false
	}
}
