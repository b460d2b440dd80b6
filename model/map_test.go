package model

import "testing"

func TestPosition(t *testing.T) {
	pos := NewPosition(5, 10)
	if pos.X != 5 || pos.Y != 10 {
		t.Errorf("Unexpected position: %+v", pos)
	}

	moved := pos.Moved(2, -3)
	if moved.X != 7 || moved.Y != 7 {
		t.Errorf("Unexpected moved position: %+v", moved)
	}

	if d := pos.ManhattanDistance(moved); d != 5 {
		t.Errorf("Expected distance 5, got %d", d)
	}
}

func TestCellTypeProperties(t *testing.T) {
	if CellPlain.MovementCost() != 1 {
		t.Error("Plain must cost 1")
	}
	if CellForest.MovementCost() != 2 {
		t.Error("Forest must cost 2")
	}
	if CellMountain.MovementCost() != 3 {
		t.Error("Mountain must cost 3")
	}
	if CellWater.MovementCost() != Impassable {
		t.Error("Water must be impassable")
	}

	if CellForest.DefenseModifier() != 20 {
		t.Error("Forest defense must be 20")
	}
	if CellMountain.DefenseModifier() != 40 {
		t.Error("Mountain defense must be 40")
	}
	if CellRoad.DefenseModifier() != -10 {
		t.Error("Road defense must be -10")
	}
}

func TestMapBasic(t *testing.T) {
	m := NewMap(10, 10)

	pos := NewPosition(5, 5)
	m.SetCell(pos, NewCell(CellPlain))

	cell, ok := m.CellAt(pos)
	if !ok {
		t.Fatal("Expected cell at (5,5)")
	}
	if cell.Type != CellPlain {
		t.Errorf("Expected plain, got %v", cell.Type)
	}
	if cell.Owned() {
		t.Error("New cell must be unowned")
	}

	if _, ok := m.CellAt(NewPosition(20, 20)); ok {
		t.Error("Out-of-bounds lookup must fail")
	}

	// Out-of-bounds set is ignored
	m.SetCell(NewPosition(-1, 0), NewCell(CellRoad))
	if _, ok := m.CellAt(NewPosition(-1, 0)); ok {
		t.Error("Out-of-bounds set must be ignored")
	}
}

func TestMapFactionCell(t *testing.T) {
	m := NewMap(5, 5)
	m.SetCell(NewPosition(1, 1), NewFactionCell(CellCity, 2))

	cell, _ := m.CellAt(NewPosition(1, 1))
	if !cell.Owned() || cell.FactionID != 2 {
		t.Errorf("Expected city owned by faction 2, got %+v", cell)
	}
}

func TestMapAdjacency(t *testing.T) {
	m := NewMap(5, 5)

	center := NewPosition(2, 2)
	m.SetCell(center, NewCell(CellPlain))

	edge := NewPosition(0, 0)
	m.SetCell(edge, NewCell(CellForest))

	if got := m.AdjacentPositions(center); len(got) != 4 {
		t.Errorf("Center must have 4 neighbors, got %d", len(got))
	}
	if got := m.AdjacentPositions(edge); len(got) != 2 {
		t.Errorf("Corner must have 2 neighbors, got %d", len(got))
	}
}
