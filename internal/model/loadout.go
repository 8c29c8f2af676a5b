package model

// LoadoutItem is one equipped target item inside a loadout.
type LoadoutItem struct {
	Slot     Slot
	ItemName string
	Source   SourceKind
	Level    int
}

// Loadout is a player's target equipment set for a season.
// At most one item per slot; the store enforces the uniqueness.
type Loadout struct {
	PlayerID int64
	SeasonID int64
	Items    []LoadoutItem
}

// NeedsVector maps each resource type to the amount still required to
// complete a loadout. Recomputed from scratch on every request; upgrade
// material counts and their page equivalents are both present, the consumer
// picks which to display.
type NeedsVector map[ResourceType]int

// NewNeedsVector returns a vector with every tracked resource set to zero.
func NewNeedsVector() NeedsVector {
	v := make(NeedsVector, len(AllResourceTypes))
	for _, rt := range AllResourceTypes {
		v[rt] = 0
	}
	return v
}

// Total sums all entries. Used as the roster-wide cost of a loadout.
func (v NeedsVector) Total() int {
	sum := 0
	for _, amount := range v {
		sum += amount
	}
	return sum
}
