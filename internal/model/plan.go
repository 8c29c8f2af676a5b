package model

// PriorityRecord is one row of the per-season distribution priority table.
// Rank 1 is the highest priority; ranks for a (season, slot) pair form a
// permutation of 1..K over the players needing that slot.
type PriorityRecord struct {
	SeasonID int64
	PlayerID int64
	Slot     Slot
	Rank     int
}

// Award assigns one slot drop to one player within a week's floor clear.
type Award struct {
	Slot         Slot   `json:"slot"`
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	OriginalRank int    `json:"original_rank"`
	ManualInput  bool   `json:"manual_input,omitempty"`
}

// WeekPlan holds one simulated week: raid floor → awards in drop order.
type WeekPlan struct {
	Week   int             `json:"week"`
	Floors map[int][]Award `json:"floors"`
}

// WeeklyPlan is the full multi-week distribution plan for a season.
type WeeklyPlan struct {
	SeasonID     int64         `json:"season_id"`
	Weeks        []WeekPlan    `json:"weeks"`
	Acquisitions map[int64]int `json:"acquisitions"`
}

// AcquisitionLedger tracks how many awards each player has received during
// one plan-generation run.
type AcquisitionLedger map[int64]int

// RebuildLedger reconstructs an acquisition ledger from an existing plan,
// used when resuming a cached plan for manual edits.
func RebuildLedger(plan *WeeklyPlan) AcquisitionLedger {
	ledger := make(AcquisitionLedger)
	for _, week := range plan.Weeks {
		for _, awards := range week.Floors {
			for _, a := range awards {
				ledger[a.PlayerID]++
			}
		}
	}
	return ledger
}
