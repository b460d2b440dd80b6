package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/slgem/slgem/events"
)

// LogSink writes drained diagnostic and lifecycle events to a structured logger
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a log sink writing to logger
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger}
}

// EventTypes returns the event types this handler processes
func (s *LogSink) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventStart,
		events.EventStop,
		events.EventPause,
		events.EventResume,
		events.EventLog,
	}
}

// HandleEvent processes a single event
func (s *LogSink) HandleEvent(pe events.PrioritizedEvent) error {
	switch pe.Event.Type {
	case events.EventLog:
		payload, ok := pe.Event.Payload.(*events.LogPayload)
		if !ok {
			s.log.Warn().Str("type", pe.Event.Type.String()).Msg("log event without payload")
			return nil
		}
		s.logAt(payload.Level).
			Str("priority", pe.Priority.String()).
			Msg(payload.Message)
	default:
		s.log.Info().
			Str("event", pe.Event.Type.String()).
			Str("priority", pe.Priority.String()).
			Msg("lifecycle event")
	}
	return nil
}

func (s *LogSink) logAt(level events.LogLevel) *zerolog.Event {
	switch level {
	case events.LogDebug:
		return s.log.Debug()
	case events.LogInfo:
		return s.log.Info()
	case events.LogWarn:
		return s.log.Warn()
	case events.LogError:
		return s.log.Error()
	}
	return s.log.Info()
}

// StatsSink exports drained telemetry events as Prometheus metrics
type StatsSink struct {
	values  *prometheus.GaugeVec
	updates prometheus.Counter
}

// NewStatsSink creates a stats sink registered on reg
func NewStatsSink(reg prometheus.Registerer) *StatsSink {
	s := &StatsSink{
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slgem_stat_value",
			Help: "Last reported value per telemetry metric.",
		}, []string{"metric"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slgem_updates_total",
			Help: "Update tick notifications drained by the game loop.",
		}),
	}
	reg.MustRegister(s.values, s.updates)
	return s
}

// EventTypes returns the event types this handler processes
func (s *StatsSink) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventStats,
		events.EventUpdate,
	}
}

// HandleEvent processes a single event
func (s *StatsSink) HandleEvent(pe events.PrioritizedEvent) error {
	switch pe.Event.Type {
	case events.EventStats:
		if payload, ok := pe.Event.Payload.(*events.StatsPayload); ok {
			s.values.WithLabelValues(payload.Metric).Set(payload.Value)
		}
	case events.EventUpdate:
		s.updates.Inc()
	}
	return nil
}
