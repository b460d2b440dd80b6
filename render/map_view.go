package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/slgem/slgem/events"
	"github.com/slgem/slgem/model"
)

// MapViewOptions controls the visible portion of the map
type MapViewOptions struct {
	// Scroll offset in tiles
	ScrollX int
	ScrollY int
	// Viewport dimensions in tiles
	ViewportWidth  int
	ViewportHeight int
	ShowGrid       bool
}

// DefaultMapViewOptions returns the standard 20x15 tile viewport
func DefaultMapViewOptions() MapViewOptions {
	return MapViewOptions{
		ViewportWidth:  20,
		ViewportHeight: 15,
		ShowGrid:       true,
	}
}

// MapView draws the game map and its units to a terminal screen.
//
// It consumes drained domain events to stay current (unit moves, turn
// boundaries) and implements the loop's Renderer so a frame always reflects
// the latest simulated state. All mutating entry points are safe to call
// from any goroutine
type MapView struct {
	mu       sync.Mutex
	screen   tcell.Screen
	gameMap  *model.Map
	units    map[uint32]*model.Unit
	factions map[uint32]*model.Faction
	opts     MapViewOptions

	selected   *model.Position
	highlights []model.Position
}

// NewMapView creates a map view drawing to screen
func NewMapView(screen tcell.Screen) *MapView {
	return &MapView{
		screen:   screen,
		units:    make(map[uint32]*model.Unit),
		factions: make(map[uint32]*model.Faction),
		opts:     DefaultMapViewOptions(),
	}
}

// SetMap replaces the displayed map
func (v *MapView) SetMap(m *model.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gameMap = m
}

// AddUnit places or replaces a unit on the view
func (v *MapView) AddUnit(u *model.Unit) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.units[u.ID] = u
}

// RemoveUnit drops a unit from the view
func (v *MapView) RemoveUnit(unitID uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.units, unitID)
}

// Unit returns a displayed unit by id
func (v *MapView) Unit(unitID uint32) (*model.Unit, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	u, ok := v.units[unitID]
	return u, ok
}

// UnitAtPosition returns the unit occupying pos, if any
func (v *MapView) UnitAtPosition(pos model.Position) (*model.Unit, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unitAtLocked(pos)
}

func (v *MapView) unitAtLocked(pos model.Position) (*model.Unit, bool) {
	for _, u := range v.units {
		if u.Position == pos {
			return u, true
		}
	}
	return nil, false
}

// AddFaction registers a faction so its units draw in its color
func (v *MapView) AddFaction(f *model.Faction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.factions[f.ID] = f
}

// SetViewOptions replaces the viewport configuration
func (v *MapView) SetViewOptions(opts MapViewOptions) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts = opts
}

// ViewOptions returns the current viewport configuration
func (v *MapView) ViewOptions() MapViewOptions {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opts
}

// Scroll shifts the viewport by (dx, dy) tiles
func (v *MapView) Scroll(dx, dy int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.ScrollX += dx
	v.opts.ScrollY += dy
}

// SelectPosition marks a tile as selected
func (v *MapView) SelectPosition(pos model.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = &pos
}

// ClearSelection removes the selection mark
func (v *MapView) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
}

// HighlightPositions marks tiles (e.g. a movement range) for emphasis
func (v *MapView) HighlightPositions(positions []model.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlights = positions
}

// EventTypes returns the event types this handler processes
func (v *MapView) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventUnitMove,
		events.EventTurnStart,
	}
}

// HandleEvent keeps the view current with drained domain events
func (v *MapView) HandleEvent(pe events.PrioritizedEvent) error {
	switch pe.Event.Type {
	case events.EventUnitMove:
		payload, ok := pe.Event.Payload.(*events.UnitMovePayload)
		if !ok {
			return nil
		}
		v.mu.Lock()
		if u, exists := v.units[payload.UnitID]; exists {
			u.Position = model.NewPosition(payload.X, payload.Y)
		}
		v.mu.Unlock()
	case events.EventTurnStart:
		payload, ok := pe.Event.Payload.(*events.TurnPayload)
		if !ok {
			return nil
		}
		v.mu.Lock()
		for _, u := range v.units {
			if u.FactionID == payload.FactionID {
				u.ResetForNewTurn()
			}
		}
		v.mu.Unlock()
	}
	return nil
}

// Render draws the visible viewport and flushes the screen.
// Implements the game loop's Renderer contract
func (v *MapView) Render() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()

	if v.gameMap != nil {
		v.drawViewportLocked()
	}
	v.screen.Show()
	return nil
}

func (v *MapView) drawViewportLocked() {
	startX := max(v.opts.ScrollX, 0)
	startY := max(v.opts.ScrollY, 0)
	endX := min(v.opts.ScrollX+v.opts.ViewportWidth, v.gameMap.Width)
	endY := min(v.opts.ScrollY+v.opts.ViewportHeight, v.gameMap.Height)

	// Tiles shift by one cell in each axis when the border is drawn
	offset := 0
	if v.opts.ShowGrid {
		offset = 1
		v.drawBorderLocked(endX-startX, endY-startY)
	}

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			pos := model.NewPosition(x, y)
			ch, style := v.tileLocked(pos)

			if v.selected != nil && *v.selected == pos {
				style = style.Reverse(true)
			} else if v.isHighlightedLocked(pos) {
				style = style.Background(tcell.ColorDarkSlateGray)
			}

			v.screen.SetContent(x-v.opts.ScrollX+offset, y-v.opts.ScrollY+offset, ch, nil, style)
		}
	}
}

// drawBorderLocked frames the visible tile area
func (v *MapView) drawBorderLocked(width, height int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for x := 1; x <= width; x++ {
		v.screen.SetContent(x, 0, '-', nil, style)
		v.screen.SetContent(x, height+1, '-', nil, style)
	}
	for y := 1; y <= height; y++ {
		v.screen.SetContent(0, y, '|', nil, style)
		v.screen.SetContent(width+1, y, '|', nil, style)
	}
	v.screen.SetContent(0, 0, '+', nil, style)
	v.screen.SetContent(width+1, 0, '+', nil, style)
	v.screen.SetContent(0, height+1, '+', nil, style)
	v.screen.SetContent(width+1, height+1, '+', nil, style)
}

func (v *MapView) tileLocked(pos model.Position) (rune, tcell.Style) {
	if u, ok := v.unitAtLocked(pos); ok {
		style := tcell.StyleDefault.Foreground(v.factionColorLocked(u.FactionID)).Bold(true)
		return unitRune(u.Type), style
	}

	cell, ok := v.gameMap.CellAt(pos)
	if !ok {
		return ' ', tcell.StyleDefault
	}
	return cellRune(cell.Type), tcell.StyleDefault.Foreground(cellColor(cell.Type))
}

func (v *MapView) isHighlightedLocked(pos model.Position) bool {
	for _, p := range v.highlights {
		if p == pos {
			return true
		}
	}
	return false
}

func (v *MapView) factionColorLocked(factionID uint32) tcell.Color {
	if f, ok := v.factions[factionID]; ok {
		return tcell.NewRGBColor(int32(f.Color.R), int32(f.Color.G), int32(f.Color.B))
	}
	return tcell.ColorWhite
}

// cellRune maps terrain to its display glyph:
// .=plain, T=forest, ^=mountain, ~=water, ==road, C=city, B=base
func cellRune(t model.CellType) rune {
	switch t {
	case model.CellPlain:
		return '.'
	case model.CellForest:
		return 'T'
	case model.CellMountain:
		return '^'
	case model.CellWater:
		return '~'
	case model.CellRoad:
		return '='
	case model.CellCity:
		return 'C'
	case model.CellBase:
		return 'B'
	}
	return ' '
}

// unitRune maps a unit type to its display glyph:
// I=infantry, K=cavalry, R=ranged, S=siege, U=support
func unitRune(t model.UnitType) rune {
	switch t {
	case model.UnitInfantry:
		return 'I'
	case model.UnitCavalry:
		return 'K'
	case model.UnitRanged:
		return 'R'
	case model.UnitSiege:
		return 'S'
	case model.UnitSupport:
		return 'U'
	}
	return '?'
}

func cellColor(t model.CellType) tcell.Color {
	switch t {
	case model.CellPlain:
		return tcell.ColorGreen
	case model.CellForest:
		return tcell.ColorDarkGreen
	case model.CellMountain:
		return tcell.ColorGray
	case model.CellWater:
		return tcell.ColorBlue
	case model.CellRoad:
		return tcell.ColorYellow
	case model.CellCity:
		return tcell.ColorWhite
	case model.CellBase:
		return tcell.ColorPurple
	}
	return tcell.ColorDefault
}
