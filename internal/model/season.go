package model

import "time"

// DistributionMethod selects how a season hands out drops.
type DistributionMethod string

const (
	// DistributionPriority is the only method the engine computes plans for.
	DistributionPriority DistributionMethod = "priority"
	// DistributionFreeForAll seasons roll per drop; no plan is generated.
	DistributionFreeForAll DistributionMethod = "free_for_all"
)

// Season is one raid tier.
type Season struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
	Method    DistributionMethod
}

// Player is a roster member.
type Player struct {
	ID       int64
	Nickname string
	Job      string
}
