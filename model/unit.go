package model

// UnitType classifies combat units
type UnitType int

const (
	UnitInfantry UnitType = iota
	UnitCavalry
	UnitRanged
	UnitSiege
	UnitSupport
)

// BaseMovement returns the unit type's movement points per turn
func (t UnitType) BaseMovement() int {
	switch t {
	case UnitInfantry:
		return 3
	case UnitCavalry:
		return 5
	case UnitRanged:
		return 2
	case UnitSiege:
		return 1
	case UnitSupport:
		return 2
	}
	return 0
}

// BaseAttack returns the unit type's base attack strength
func (t UnitType) BaseAttack() int {
	switch t {
	case UnitInfantry:
		return 10
	case UnitCavalry:
		return 12
	case UnitRanged:
		return 8
	case UnitSiege:
		return 15
	case UnitSupport:
		return 4
	}
	return 0
}

// BaseDefense returns the unit type's base defense strength
func (t UnitType) BaseDefense() int {
	switch t {
	case UnitInfantry:
		return 10
	case UnitCavalry:
		return 8
	case UnitRanged:
		return 6
	case UnitSiege:
		return 5
	case UnitSupport:
		return 7
	}
	return 0
}

// UnitStatus tracks what a unit is doing this turn
type UnitStatus int

const (
	StatusIdle UnitStatus = iota
	StatusMoving
	StatusAttacking
	StatusDefending
	StatusExhausted
	StatusWounded
)

// Unit is a single combat unit on the map
type Unit struct {
	ID         uint32
	Name       string
	Type       UnitType
	FactionID  uint32
	Position   Position
	Health     int
	Experience int
	Status     UnitStatus

	MovementPoints int
	AttackBonus    int
	DefenseBonus   int
}

// NewUnit creates a unit at full health with its type's movement allowance
func NewUnit(id uint32, name string, unitType UnitType, factionID uint32, pos Position) *Unit {
	return &Unit{
		ID:             id,
		Name:           name,
		Type:           unitType,
		FactionID:      factionID,
		Position:       pos,
		Health:         100,
		Status:         StatusIdle,
		MovementPoints: unitType.BaseMovement(),
	}
}

// AttackPower returns the current attack strength: base plus bonuses and an
// experience bonus, scaled down by lost health, floored at 1
func (u *Unit) AttackPower() int {
	base := u.Type.BaseAttack()
	expBonus := u.Experience / 100
	healthFactor := float64(u.Health) / 100.0

	total := float64(base+u.AttackBonus+expBonus) * healthFactor
	if total < 1 {
		return 1
	}
	return int(total)
}

// DefensePower returns the current defense strength, same scaling as attack
// with a slower experience curve
func (u *Unit) DefensePower() int {
	base := u.Type.BaseDefense()
	expBonus := u.Experience / 150
	healthFactor := float64(u.Health) / 100.0

	total := float64(base+u.DefenseBonus+expBonus) * healthFactor
	if total < 1 {
		return 1
	}
	return int(total)
}

// MoveTo moves the unit if it has enough movement points, returning success.
// Spending the last point leaves the unit Exhausted
func (u *Unit) MoveTo(pos Position, cost int) bool {
	if u.MovementPoints < cost {
		return false
	}
	u.Position = pos
	u.MovementPoints -= cost
	if u.MovementPoints == 0 {
		u.Status = StatusExhausted
	} else {
		u.Status = StatusMoving
	}
	return true
}

// ResetForNewTurn restores movement points and clears exhaustion
func (u *Unit) ResetForNewTurn() {
	u.MovementPoints = u.Type.BaseMovement()
	if u.Status == StatusExhausted {
		u.Status = StatusIdle
	}
}

// TakeDamage applies damage and returns false when the unit is destroyed.
// A survivor below 30 health becomes Wounded
func (u *Unit) TakeDamage(amount int) bool {
	if amount > u.Health {
		amount = u.Health
	}
	u.Health -= amount

	if u.Health == 0 {
		return false
	}
	if u.Health < 30 {
		u.Status = StatusWounded
	}
	return true
}

// GainExperience accumulates experience points
func (u *Unit) GainExperience(amount int) {
	u.Experience += amount
}
