package events

// LogLevel classifies LogPayload severity
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// String returns the level name for logging
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	}
	return "unknown"
}

// UpdatePayload carries elapsed simulation seconds for EventUpdate
type UpdatePayload struct {
	Delta float64
}

// TurnPayload identifies the faction for EventTurnStart/EventTurnEnd
type TurnPayload struct {
	FactionID uint32
}

// UnitMovePayload carries the unit and its new map position for EventUnitMove
type UnitMovePayload struct {
	UnitID uint32
	X      int
	Y      int
}

// LogPayload carries a diagnostic message for EventLog
type LogPayload struct {
	Message string
	Level   LogLevel
}

// StatsPayload carries one telemetry sample for EventStats
type StatsPayload struct {
	Metric string
	Value  float64
}
