package distribution

import "RaidLedger/internal/model"

// Candidate is one player in a slot's ranked order.
type Candidate struct {
	PlayerID     int64
	PlayerName   string
	OriginalRank int
}

// Allocator picks a single winner from a slot's ranked candidates,
// rebalancing the scarcity-based ranking against how many awards each player
// has already received.
type Allocator struct {
	// Penalty is added to a candidate's rank once per prior award. At 2, a
	// rank-1 player with one award scores 3 and loses to an untouched
	// rank-2, but a hoarded low-rank player cannot starve the top of the
	// list forever.
	Penalty int
}

// NewAllocator creates an Allocator with the given penalty weight.
func NewAllocator(penalty int) *Allocator {
	return &Allocator{Penalty: penalty}
}

// PickWinner returns the candidate to award the drop to, or false when the
// list is empty. Players with zero acquisitions are served first, in
// original-rank order; otherwise the lowest rank+penalty×count wins. The
// ledger is read, never written: the caller applies the increment.
func (a *Allocator) PickWinner(candidates []Candidate, ledger model.AcquisitionLedger) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	var best Candidate
	bestScore := 0
	found := false
	for _, c := range candidates {
		if ledger[c.PlayerID] != 0 {
			continue
		}
		if !found || c.OriginalRank < best.OriginalRank {
			best = c
			found = true
		}
	}
	if found {
		return best, true
	}

	for _, c := range candidates {
		score := c.OriginalRank + a.Penalty*ledger[c.PlayerID]
		if !found || score < bestScore ||
			(score == bestScore && c.OriginalRank < best.OriginalRank) {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, true
}
