package events

// EventType represents the type of engine event
type EventType int

const (
	// EventStart signals engine startup
	// Trigger: Engine.Start | Payload: nil
	EventStart EventType = iota

	// EventStop signals engine shutdown
	// Trigger: Engine.Stop, fatal collaborator failure
	// Consumer: GameLoop (High priority short-circuits the run loop) | Payload: nil
	EventStop

	// EventPause signals simulation pause
	// Trigger: user input, window focus loss | Payload: nil
	EventPause

	// EventResume signals simulation resume after pause
	// Trigger: user input | Payload: nil
	EventResume

	// EventUpdate signals a simulation tick with elapsed seconds
	// Trigger: frame pacer, input pump
	// Consumer: GameLoop frame processing | Payload: *UpdatePayload
	EventUpdate

	// EventTurnStart signals the beginning of a faction's turn
	// Consumer: domain subsystems (opaque to the core) | Payload: *TurnPayload
	EventTurnStart

	// EventTurnEnd signals the end of a faction's turn
	// Consumer: domain subsystems (opaque to the core) | Payload: *TurnPayload
	EventTurnEnd

	// EventUnitMove signals a unit position change
	// Consumer: map view, domain subsystems | Payload: *UnitMovePayload
	EventUnitMove

	// EventLog carries a diagnostic message
	// Consumer: LogSink | Payload: *LogPayload
	EventLog

	// EventStats carries a telemetry sample
	// Consumer: StatsSink | Payload: *StatsPayload
	EventStats

	eventTypeCount
)

// String returns the event type name for logging
func (t EventType) String() string {
	switch t {
	case EventStart:
		return "Start"
	case EventStop:
		return "Stop"
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	case EventUpdate:
		return "Update"
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventUnitMove:
		return "UnitMove"
	case EventLog:
		return "Log"
	case EventStats:
		return "Stats"
	}
	return "Unknown"
}

// Priority classifies how the scheduler treats an event.
// It never reorders delivery; a High Stop is the only priority-sensitive branch
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// String returns the priority name for logging
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	}
	return "unknown"
}

// DefaultPriority returns the priority used when a publisher specifies none.
// Lifecycle control is High, simulation and domain traffic Normal, diagnostics Low.
// Every EventType must appear here; an unknown value is a programming error
func (t EventType) DefaultPriority() Priority {
	switch t {
	case EventStart, EventStop, EventPause, EventResume:
		return PriorityHigh
	case EventUpdate, EventTurnStart, EventTurnEnd, EventUnitMove:
		return PriorityNormal
	case EventLog, EventStats:
		return PriorityLow
	}
	panic("events: no default priority for event type " + t.String())
}

// Event is a single engine event with its payload.
// Payload concrete types are fixed per EventType (see the type constants)
type Event struct {
	Type    EventType
	Payload any
}

// PrioritizedEvent is the unit transported on subscriber queues
type PrioritizedEvent struct {
	Priority Priority
	Event    Event
}
