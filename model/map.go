// Package model holds the map and unit domain types consumed by the
// presentation layer. The runtime core treats these as opaque collaborators
package model

import "math"

// Position is a 2D map coordinate
type Position struct {
	X, Y int
}

// NewPosition creates a position
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Moved returns the position shifted by (dx, dy)
func (p Position) Moved(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// ManhattanDistance returns the grid distance to other
func (p Position) ManhattanDistance(other Position) int {
	return int(math.Abs(float64(p.X-other.X)) + math.Abs(float64(p.Y-other.Y)))
}

// CellType classifies map terrain
type CellType int

const (
	CellPlain CellType = iota
	CellForest
	CellMountain
	CellWater
	CellRoad
	CellCity
	CellBase
)

// Impassable marks terrain no unit can enter
const Impassable = math.MaxInt32

// MovementCost returns the movement points needed to enter this terrain
func (t CellType) MovementCost() int {
	switch t {
	case CellPlain, CellRoad, CellCity, CellBase:
		return 1
	case CellForest:
		return 2
	case CellMountain:
		return 3
	case CellWater:
		return Impassable
	}
	return 1
}

// DefenseModifier returns the defense bonus in percent for units on this terrain
func (t CellType) DefenseModifier() int {
	switch t {
	case CellPlain, CellWater:
		return 0
	case CellForest:
		return 20
	case CellMountain:
		return 40
	case CellRoad:
		return -10
	case CellCity:
		return 30
	case CellBase:
		return 50
	}
	return 0
}

// Cell is one map tile. FactionID 0 means unowned
type Cell struct {
	Type      CellType
	FactionID uint32
}

// NewCell creates an unowned cell
func NewCell(t CellType) Cell {
	return Cell{Type: t}
}

// NewFactionCell creates a cell owned by a faction
func NewFactionCell(t CellType, factionID uint32) Cell {
	return Cell{Type: t, FactionID: factionID}
}

// Owned reports whether a faction controls this cell
func (c Cell) Owned() bool {
	return c.FactionID != 0
}

// Map is the game map grid
type Map struct {
	Width  int
	Height int
	cells  map[Position]Cell
}

// NewMap creates an empty map of the given dimensions
func NewMap(width, height int) *Map {
	return &Map{
		Width:  width,
		Height: height,
		cells:  make(map[Position]Cell),
	}
}

// SetCell places a cell at pos. Out-of-bounds positions are ignored
func (m *Map) SetCell(pos Position, cell Cell) {
	if m.IsValidPosition(pos) {
		m.cells[pos] = cell
	}
}

// CellAt returns the cell at pos, false when unset or out of bounds
func (m *Map) CellAt(pos Position) (Cell, bool) {
	if !m.IsValidPosition(pos) {
		return Cell{}, false
	}
	cell, ok := m.cells[pos]
	return cell, ok
}

// IsValidPosition reports whether pos lies inside the map bounds
func (m *Map) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < m.Width && pos.Y < m.Height
}

// AdjacentPositions returns the in-bounds orthogonal neighbors of pos
func (m *Map) AdjacentPositions(pos Position) []Position {
	directions := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} // up, right, down, left

	adjacent := make([]Position, 0, 4)
	for _, d := range directions {
		next := pos.Moved(d[0], d[1])
		if m.IsValidPosition(next) {
			adjacent = append(adjacent, next)
		}
	}
	return adjacent
}
