package engine

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/slgem/slgem/events"
)

func TestEngineStartStop(t *testing.T) {
	eng := New()
	if eng.Running() {
		t.Error("New engine must not be running")
	}

	sub := eng.Bus().Subscribe(events.TopicEngine)

	if err := eng.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !eng.Running() {
		t.Error("Engine must report running after Start")
	}

	pe, ok := sub.TryRecv()
	if !ok || pe.Event.Type != events.EventStart {
		t.Fatalf("Expected Start event, got %+v (ok=%v)", pe, ok)
	}
	if pe.Priority != events.PriorityHigh {
		t.Errorf("Start must carry its default High priority, got %v", pe.Priority)
	}

	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if eng.Running() {
		t.Error("Engine must report stopped after Stop")
	}

	pe, ok = sub.TryRecv()
	if !ok || pe.Event.Type != events.EventStop {
		t.Fatalf("Expected Stop event, got %+v (ok=%v)", pe, ok)
	}
	if pe.Priority != events.PriorityHigh {
		t.Errorf("Stop must carry its default High priority, got %v", pe.Priority)
	}
}

// Engine.Stop terminates a loop built by NewLoop
func TestEngineStopTerminatesLoop(t *testing.T) {
	eng := New()
	gl, err := eng.NewLoop(DefaultLoopConfig())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- gl.Run()
	}()

	if err := eng.Start(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Stop(); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected graceful loop end on engine Stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not terminate after engine Stop")
	}
}

// The plain adapter strips priority, preserves order, and never filters
func TestSubscribePlainForwardsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng := New()
	ps := eng.SubscribePlain("domain")

	published := []struct {
		pri events.Priority
		ev  events.Event
	}{
		{events.PriorityHigh, events.Event{Type: events.EventTurnStart, Payload: &events.TurnPayload{FactionID: 1}}},
		{events.PriorityNormal, events.Event{Type: events.EventUnitMove, Payload: &events.UnitMovePayload{UnitID: 3, X: 4, Y: 5}}},
		{events.PriorityLow, events.Event{Type: events.EventLog, Payload: &events.LogPayload{Message: "m", Level: events.LogDebug}}},
		{events.PriorityNormal, events.Event{Type: events.EventTurnEnd, Payload: &events.TurnPayload{FactionID: 1}}},
	}

	for _, p := range published {
		if err := eng.Bus().PublishWith("domain", p.pri, p.ev); err != nil {
			t.Fatalf("PublishWith failed: %v", err)
		}
	}

	for i, p := range published {
		ev, ok := ps.Recv()
		if !ok {
			t.Fatalf("Adapter closed after %d events", i)
		}
		if ev.Type != p.ev.Type {
			t.Errorf("Event %d: expected %v, got %v (order not preserved)", i, p.ev.Type, ev.Type)
		}
	}

	ps.Close()
	if _, ok := ps.Recv(); ok {
		t.Error("Recv after Close must report closed")
	}
}

// Closing the plain adapter must end its forwarding goroutine
func TestSubscribePlainCloseStopsForwarder(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng := New()
	ps := eng.SubscribePlain("domain")
	ps.Close()
	ps.Close() // idempotent

	// Publishing after close reports the dead subscriber but must not block
	err := eng.Bus().Publish("domain", events.Event{Type: events.EventTurnStart, Payload: &events.TurnPayload{FactionID: 1}})
	if err == nil {
		t.Error("Expected delivery error for the closed plain subscriber")
	}
}

func TestNewLoopInvalidConfig(t *testing.T) {
	eng := New()
	if _, err := eng.NewLoop(LoopConfig{TargetFPS: 0, MaxUpdates: 0}); err == nil {
		t.Error("Expected error for invalid loop config")
	}
}
