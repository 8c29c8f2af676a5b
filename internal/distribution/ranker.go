package distribution

import (
	"sort"

	"RaidLedger/internal/model"
)

// RankBySlot turns the roster's per-slot cost contributions into a ranked
// player order per slot. Higher cost ranks first: a player chasing the
// augmented tome variant outranks one who takes the savage drop, because the
// costlier acquisition path is the scarcer one. Ties break on ascending
// player ID so reranking the same roster always yields the same order.
//
// Slots nobody has equipped produce an empty list, not an error. Roster-wide
// fairness is deliberately not considered here; that is the allocator's job.
func RankBySlot(slotCosts map[int64]map[model.Slot]int) map[model.Slot][]int64 {
	ranked := make(map[model.Slot][]int64, len(model.AllSlots))

	for _, slot := range model.AllSlots {
		type entry struct {
			playerID int64
			cost     int
		}
		var entries []entry
		for playerID, costs := range slotCosts {
			if cost, ok := costs[slot]; ok {
				entries = append(entries, entry{playerID: playerID, cost: cost})
			}
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].cost != entries[j].cost {
				return entries[i].cost > entries[j].cost
			}
			return entries[i].playerID < entries[j].playerID
		})

		order := make([]int64, len(entries))
		for i, e := range entries {
			order[i] = e.playerID
		}
		ranked[slot] = order
	}
	return ranked
}

// RecordsFromRanking flattens a per-slot ranking into priority table rows,
// rank 1 first within each slot.
func RecordsFromRanking(seasonID int64, ranking map[model.Slot][]int64) []model.PriorityRecord {
	var records []model.PriorityRecord
	for _, slot := range model.AllSlots {
		for i, playerID := range ranking[slot] {
			records = append(records, model.PriorityRecord{
				SeasonID: seasonID,
				PlayerID: playerID,
				Slot:     slot,
				Rank:     i + 1,
			})
		}
	}
	return records
}
