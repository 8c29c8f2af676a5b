package distribution

import (
	"RaidLedger/internal/config"
	"RaidLedger/internal/model"
)

// Planner simulates the weekly drop schedule and assigns every slot
// opportunity to a player.
type Planner struct {
	DropTable []config.FloorDrops
	Allocator *Allocator
}

// NewPlanner creates a Planner over the given drop table.
func NewPlanner(dropTable []config.FloorDrops, allocator *Allocator) *Planner {
	return &Planner{DropTable: dropTable, Allocator: allocator}
}

// Generate runs weeks sequential passes over the drop table. The acquisition
// ledger threads through the whole run, so later weeks see earlier winners
// and the fairness adjustment compounds. For a fixed ranking the output is
// fully deterministic.
//
// A player may win the same slot in different weeks; the only brake is the
// global acquisition penalty, there is no per-slot exclusion.
func (p *Planner) Generate(seasonID int64, weeks int, ranked map[model.Slot][]Candidate) *model.WeeklyPlan {
	plan := &model.WeeklyPlan{
		SeasonID:     seasonID,
		Acquisitions: make(map[int64]int),
	}
	ledger := make(model.AcquisitionLedger)

	for week := 1; week <= weeks; week++ {
		weekPlan := model.WeekPlan{
			Week:   week,
			Floors: make(map[int][]model.Award, len(p.DropTable)),
		}
		for _, floor := range p.DropTable {
			awards := make([]model.Award, 0, len(floor.Slots))
			for _, slot := range floor.Slots {
				winner, ok := p.Allocator.PickWinner(ranked[slot], ledger)
				if !ok {
					continue // nobody needs this slot
				}
				ledger[winner.PlayerID]++
				awards = append(awards, model.Award{
					Slot:         slot,
					PlayerID:     winner.PlayerID,
					PlayerName:   winner.PlayerName,
					OriginalRank: winner.OriginalRank,
				})
			}
			weekPlan.Floors[floor.Floor] = awards
		}
		plan.Weeks = append(plan.Weeks, weekPlan)
	}

	for playerID, count := range ledger {
		plan.Acquisitions[playerID] = count
	}
	return plan
}
