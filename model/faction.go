package model

// FactionType classifies a faction's stance toward the player
type FactionType int

const (
	FactionPlayer FactionType = iota
	FactionAlly
	FactionNeutral
	FactionRival
	FactionIndependent
)

// Relationship describes the diplomatic state between two factions
type Relationship int

const (
	RelationFriendly Relationship = iota
	RelationNeutral
	RelationHostile
	RelationAllied
	RelationAtWar
)

// CostModifier returns the negotiation/passage cost multiplier for this relationship
func (r Relationship) CostModifier() float64 {
	switch r {
	case RelationFriendly:
		return 0.8
	case RelationNeutral:
		return 1.0
	case RelationHostile:
		return 1.5
	case RelationAllied:
		return 0.5
	case RelationAtWar:
		return 2.0
	}
	return 1.0
}

// AllowsPassage reports whether units may cross territory under this relationship
func (r Relationship) AllowsPassage() bool {
	return r != RelationHostile && r != RelationAtWar
}

// AllowsAttack reports whether combat is permitted under this relationship
func (r Relationship) AllowsAttack() bool {
	return r == RelationHostile || r == RelationAtWar
}

// Color is an RGB triple used by the presentation layer
type Color struct {
	R, G, B uint8
}

// Faction is one side in the game
type Faction struct {
	ID               uint32
	Name             string
	Type             FactionType
	Color            Color
	Gold             int
	DiplomaticPoints int

	relationships map[uint32]Relationship
}

// NewFaction creates a faction with the starting treasury
func NewFaction(id uint32, name string, factionType FactionType, color Color) *Faction {
	return &Faction{
		ID:            id,
		Name:          name,
		Type:          factionType,
		Color:         color,
		Gold:          100,
		relationships: make(map[uint32]Relationship),
	}
}

// SetRelationship records the diplomatic state toward another faction
func (f *Faction) SetRelationship(otherID uint32, rel Relationship) {
	f.relationships[otherID] = rel
}

// Relationship returns the diplomatic state toward another faction,
// Neutral when none was set
func (f *Faction) Relationship(otherID uint32) Relationship {
	if rel, ok := f.relationships[otherID]; ok {
		return rel
	}
	return RelationNeutral
}

// CanPassThrough reports whether this faction's units may cross otherID's territory
func (f *Faction) CanPassThrough(otherID uint32) bool {
	return f.Relationship(otherID).AllowsPassage()
}

// CanAttack reports whether this faction may attack otherID
func (f *Faction) CanAttack(otherID uint32) bool {
	return f.Relationship(otherID).AllowsAttack()
}

// AddGold credits the treasury
func (f *Faction) AddGold(amount int) {
	f.Gold += amount
}

// SpendGold debits the treasury, returning false when funds are insufficient
func (f *Faction) SpendGold(amount int) bool {
	if f.Gold < amount {
		return false
	}
	f.Gold -= amount
	return true
}

// AddDiplomaticPoints credits diplomatic currency
func (f *Faction) AddDiplomaticPoints(amount int) {
	f.DiplomaticPoints += amount
}

// DiplomaticActionCost scales a base cost by the relationship toward otherID
func (f *Faction) DiplomaticActionCost(otherID uint32, baseCost int) int {
	return int(float64(baseCost) * f.Relationship(otherID).CostModifier())
}
