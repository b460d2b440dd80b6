package model

import "testing"

func TestUnitTypeStats(t *testing.T) {
	if UnitInfantry.BaseMovement() != 3 {
		t.Error("Infantry movement must be 3")
	}
	if UnitCavalry.BaseMovement() != 5 {
		t.Error("Cavalry movement must be 5")
	}
	if UnitInfantry.BaseAttack() != 10 {
		t.Error("Infantry attack must be 10")
	}
	if UnitSiege.BaseAttack() != 15 {
		t.Error("Siege attack must be 15")
	}
	if UnitInfantry.BaseDefense() != 10 {
		t.Error("Infantry defense must be 10")
	}
	if UnitRanged.BaseDefense() != 6 {
		t.Error("Ranged defense must be 6")
	}
}

func TestUnitCreation(t *testing.T) {
	unit := NewUnit(1, "test infantry", UnitInfantry, 1, NewPosition(5, 5))

	if unit.ID != 1 || unit.Name != "test infantry" {
		t.Errorf("Unexpected identity: %+v", unit)
	}
	if unit.Position != NewPosition(5, 5) {
		t.Errorf("Unexpected position: %+v", unit.Position)
	}
	if unit.Health != 100 || unit.Experience != 0 {
		t.Errorf("Unexpected vitals: health=%d exp=%d", unit.Health, unit.Experience)
	}
	if unit.Status != StatusIdle {
		t.Errorf("Expected idle, got %v", unit.Status)
	}
	if unit.MovementPoints != 3 {
		t.Errorf("Expected infantry movement 3, got %d", unit.MovementPoints)
	}
}

func TestUnitMovement(t *testing.T) {
	unit := NewUnit(1, "test cavalry", UnitCavalry, 1, NewPosition(1, 1))

	if unit.MovementPoints != 5 {
		t.Fatalf("Expected cavalry movement 5, got %d", unit.MovementPoints)
	}

	if !unit.MoveTo(NewPosition(3, 3), 3) {
		t.Fatal("Move within budget must succeed")
	}
	if unit.Position != NewPosition(3, 3) || unit.MovementPoints != 2 {
		t.Errorf("Unexpected state after move: %+v", unit)
	}
	if unit.Status != StatusMoving {
		t.Errorf("Expected moving, got %v", unit.Status)
	}

	// Spending the last point exhausts the unit
	if !unit.MoveTo(NewPosition(4, 4), 2) {
		t.Fatal("Exact-budget move must succeed")
	}
	if unit.MovementPoints != 0 || unit.Status != StatusExhausted {
		t.Errorf("Expected exhausted with 0 points, got %+v", unit)
	}

	// No points left
	if unit.MoveTo(NewPosition(5, 5), 1) {
		t.Error("Move without points must fail")
	}
	if unit.Position != NewPosition(4, 4) {
		t.Error("Failed move must not change position")
	}
}

func TestUnitDamage(t *testing.T) {
	unit := NewUnit(1, "test infantry", UnitInfantry, 1, NewPosition(0, 0))

	if !unit.TakeDamage(20) {
		t.Error("Light damage must not destroy")
	}
	if unit.Health != 80 || unit.Status != StatusIdle {
		t.Errorf("Unexpected state: %+v", unit)
	}

	if !unit.TakeDamage(60) {
		t.Error("Heavy damage must not destroy yet")
	}
	if unit.Health != 20 || unit.Status != StatusWounded {
		t.Errorf("Expected wounded at 20 health, got %+v", unit)
	}

	if unit.TakeDamage(30) {
		t.Error("Lethal damage must report destruction")
	}
	if unit.Health != 0 {
		t.Errorf("Expected 0 health, got %d", unit.Health)
	}
}

func TestUnitReset(t *testing.T) {
	unit := NewUnit(1, "test infantry", UnitInfantry, 1, NewPosition(0, 0))

	if !unit.MoveTo(NewPosition(1, 1), 3) {
		t.Fatal("Move must succeed")
	}
	if unit.MovementPoints != 0 || unit.Status != StatusExhausted {
		t.Fatalf("Expected exhausted, got %+v", unit)
	}

	unit.ResetForNewTurn()
	if unit.MovementPoints != 3 || unit.Status != StatusIdle {
		t.Errorf("Expected reset to idle with full movement, got %+v", unit)
	}
}

func TestUnitPowerCalculation(t *testing.T) {
	unit := NewUnit(1, "test infantry", UnitInfantry, 1, NewPosition(0, 0))

	if unit.AttackPower() != 10 || unit.DefensePower() != 10 {
		t.Errorf("Unexpected base powers: atk=%d def=%d", unit.AttackPower(), unit.DefensePower())
	}

	unit.AttackBonus = 5
	unit.DefenseBonus = 3
	if unit.AttackPower() != 15 || unit.DefensePower() != 13 {
		t.Errorf("Unexpected bonused powers: atk=%d def=%d", unit.AttackPower(), unit.DefensePower())
	}

	// Lost health scales powers down
	unit.Health = 50
	if unit.AttackPower() != 7 { // (10+5) * 0.5 = 7.5 -> 7
		t.Errorf("Expected attack 7 at half health, got %d", unit.AttackPower())
	}
	if unit.DefensePower() != 6 { // (10+3) * 0.5 = 6.5 -> 6
		t.Errorf("Expected defense 6 at half health, got %d", unit.DefensePower())
	}

	// Experience adds a bonus
	unit.Health = 100
	unit.Experience = 300
	if unit.AttackPower() != 18 { // 10 + 5 + 3
		t.Errorf("Expected attack 18, got %d", unit.AttackPower())
	}
	if unit.DefensePower() != 15 { // 10 + 3 + 2
		t.Errorf("Expected defense 15, got %d", unit.DefensePower())
	}
}
