package model

// Slot is an equipment position in a loadout.
type Slot string

const (
	SlotWeapon   Slot = "weapon"
	SlotHead     Slot = "head"
	SlotChest    Slot = "chest"
	SlotHands    Slot = "hands"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
	SlotEarrings Slot = "earrings"
	SlotNecklace Slot = "necklace"
	SlotBracelet Slot = "bracelet"
	SlotRing1    Slot = "ring1"
	SlotRing2    Slot = "ring2"
)

// AllSlots lists every slot in ranking order. The order is fixed: rankings
// and plans iterate it instead of a map so output is deterministic.
var AllSlots = []Slot{
	SlotWeapon, SlotHead, SlotChest, SlotHands, SlotLegs, SlotFeet,
	SlotEarrings, SlotNecklace, SlotBracelet, SlotRing1, SlotRing2,
}

// BodySlots are the armor slots whose augmented variant consumes reinforced fiber.
var BodySlots = map[Slot]bool{
	SlotHead: true, SlotChest: true, SlotHands: true, SlotLegs: true, SlotFeet: true,
}

// AccessorySlots are the slots whose augmented variant consumes hardened fluid.
var AccessorySlots = map[Slot]bool{
	SlotEarrings: true, SlotNecklace: true, SlotBracelet: true, SlotRing1: true, SlotRing2: true,
}

// SourceKind describes where an item comes from, which drives its acquisition cost.
type SourceKind string

const (
	SourceTome          SourceKind = "tome"           // bought with tomestones
	SourceAugmentedTome SourceKind = "augmented_tome" // tomestones + one upgrade material
	SourceSavage        SourceKind = "savage"         // raid drop, exchangeable for pages
	SourceCrafted       SourceKind = "crafted"        // contributes no tracked currency
)

// ResourceType is one of the closed set of tracked currencies.
type ResourceType string

const (
	ResourceTomestone       ResourceType = "tomestones"
	ResourcePageFloor1      ResourceType = "pages_floor1"
	ResourcePageFloor2      ResourceType = "pages_floor2"
	ResourcePageFloor3      ResourceType = "pages_floor3"
	ResourcePageFloor4      ResourceType = "pages_floor4"
	ResourceHardenedFluid   ResourceType = "hardened_fluid"
	ResourceReinforcedFiber ResourceType = "reinforced_fiber"
	ResourceWeaponToken     ResourceType = "weapon_token"
)

// AllResourceTypes lists every tracked resource type in persistence order.
var AllResourceTypes = []ResourceType{
	ResourceTomestone,
	ResourcePageFloor1, ResourcePageFloor2, ResourcePageFloor3, ResourcePageFloor4,
	ResourceHardenedFluid, ResourceReinforcedFiber, ResourceWeaponToken,
}

// PageResourceForFloor maps a raid floor number to its page currency.
func PageResourceForFloor(floor int) (ResourceType, bool) {
	switch floor {
	case 1:
		return ResourcePageFloor1, true
	case 2:
		return ResourcePageFloor2, true
	case 3:
		return ResourcePageFloor3, true
	case 4:
		return ResourcePageFloor4, true
	default:
		return "", false
	}
}
