package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/slgem/slgem/audio"
	"github.com/slgem/slgem/engine"
	"github.com/slgem/slgem/events"
	"github.com/slgem/slgem/model"
	"github.com/slgem/slgem/render"
)

var (
	configFlag = flag.String("config", "slgem.yaml", "Path to YAML settings file")
	logFlag    = flag.String("log", "", "Log file path (empty disables logging)")
	muteFlag   = flag.Bool("mute", false, "Disable audio cues")
	seedFlag   = flag.Int64("seed", 0, "Demo map seed (0 uses current time)")
)

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCleanup, err := newLogger(cfg.LogLevel, *logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before the stack trace prints
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSLGEM CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	if err := run(cfg, screen, logger); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "slgem: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, screen tcell.Screen, logger zerolog.Logger) error {
	eng := engine.New()
	eng.SetLogger(logger)

	loop, err := eng.NewLoop(cfg.LoopConfig())
	if err != nil {
		return err
	}
	defer loop.Close()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	view := render.NewMapView(screen)
	view.SetViewOptions(cfg.ViewOptions())
	buildDemoWorld(view, rng)

	cues := audio.NewCuePlayer()
	cues.SetMuted(cfg.Audio.Muted || *muteFlag)
	if err := cues.Init(); err != nil {
		logger.Warn().Err(err).Msg("Audio unavailable, continuing silently")
	} else {
		defer cues.Close()
	}

	loop.SetRenderer(view)
	loop.RegisterHandler(view)
	loop.RegisterHandler(cues)
	loop.RegisterHandler(engine.NewLogSink(logger))
	loop.RegisterHandler(engine.NewStatsSink(prometheus.NewRegistry()))

	// Error-topic events reach the log even when the loop is busy
	errSub := eng.SubscribePlain(events.TopicError)
	defer errSub.Close()
	go drainErrors(errSub, logger)

	if err := eng.Start(); err != nil {
		return err
	}

	done := make(chan struct{})
	go pollInput(screen, eng, view, logger, done)
	go runDemo(eng.Bus(), rng, done)

	err = loop.Run()
	close(done)
	return err
}

// newLogger builds the zerolog root. An empty path discards all output
func newLogger(level, path string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = io.Discard
	cleanup := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), cleanup, err
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logger, cleanup, nil
}

// drainErrors logs events from the error topic until its subscription closes
func drainErrors(sub *engine.PlainSubscription, logger zerolog.Logger) {
	for {
		ev, ok := sub.Recv()
		if !ok {
			return
		}
		if payload, ok := ev.Payload.(*events.LogPayload); ok {
			logger.Error().Msg(payload.Message)
		}
	}
}

// pollInput translates terminal keys into engine commands until the loop ends
func pollInput(screen tcell.Screen, eng *engine.Engine, view *render.MapView, logger zerolog.Logger, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case tev.Key() == tcell.KeyEscape || tev.Rune() == 'q':
				if err := eng.Stop(); err != nil {
					logger.Error().Err(err).Msg("engine stop failed")
				}
				return
			case tev.Key() == tcell.KeyLeft || tev.Rune() == 'h':
				view.Scroll(-1, 0)
			case tev.Key() == tcell.KeyRight || tev.Rune() == 'l':
				view.Scroll(1, 0)
			case tev.Key() == tcell.KeyUp || tev.Rune() == 'k':
				view.Scroll(0, -1)
			case tev.Key() == tcell.KeyDown || tev.Rune() == 'j':
				view.Scroll(0, 1)
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			// Screen finalized
			return
		}
	}
}

// runDemo feeds update ticks and scripted movement into the bus
func runDemo(bus *events.Bus, rng *rand.Rand, done <-chan struct{}) {
	const tick = 16 * time.Millisecond

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	turnTimer := time.NewTicker(5 * time.Second)
	defer turnTimer.Stop()

	moveTimer := time.NewTicker(800 * time.Millisecond)
	defer moveTimer.Stop()

	factionID := uint32(1)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			bus.Publish(events.TopicEngine, events.Event{
				Type:    events.EventUpdate,
				Payload: &events.UpdatePayload{Delta: tick.Seconds()},
			})
		case <-turnTimer.C:
			bus.Publish(events.TopicEngine, events.Event{
				Type:    events.EventTurnStart,
				Payload: &events.TurnPayload{FactionID: factionID},
			})
			factionID = factionID%3 + 1
		case <-moveTimer.C:
			bus.Publish(events.TopicEngine, events.Event{
				Type: events.EventUnitMove,
				Payload: &events.UnitMovePayload{
					UnitID: uint32(rng.Intn(6) + 1),
					X:      rng.Intn(demoMapWidth),
					Y:      rng.Intn(demoMapHeight),
				},
			})
		}
	}
}

const (
	demoMapWidth  = 20
	demoMapHeight = 15
)

// buildDemoWorld populates the view with a random map, three factions and
// a handful of units
func buildDemoWorld(view *render.MapView, rng *rand.Rand) {
	terrain := []model.CellType{
		model.CellPlain, model.CellPlain, model.CellPlain,
		model.CellForest, model.CellForest,
		model.CellMountain, model.CellWater, model.CellRoad,
	}

	gameMap := model.NewMap(demoMapWidth, demoMapHeight)
	for y := 0; y < demoMapHeight; y++ {
		for x := 0; x < demoMapWidth; x++ {
			cell := model.NewCell(terrain[rng.Intn(len(terrain))])
			gameMap.SetCell(model.NewPosition(x, y), cell)
		}
	}

	// One base per faction in opposite corners
	gameMap.SetCell(model.NewPosition(1, 1), model.NewFactionCell(model.CellBase, 1))
	gameMap.SetCell(model.NewPosition(demoMapWidth-2, demoMapHeight-2), model.NewFactionCell(model.CellBase, 2))
	gameMap.SetCell(model.NewPosition(demoMapWidth-2, 1), model.NewFactionCell(model.CellBase, 3))
	view.SetMap(gameMap)

	view.AddFaction(model.NewFaction(1, "Crimson Order", model.FactionPlayer, model.Color{R: 220, G: 60, B: 60}))
	view.AddFaction(model.NewFaction(2, "Azure League", model.FactionRival, model.Color{R: 70, G: 110, B: 230}))
	view.AddFaction(model.NewFaction(3, "Verdant Pact", model.FactionNeutral, model.Color{R: 60, G: 180, B: 90}))

	units := []struct {
		id      uint32
		name    string
		unit    model.UnitType
		faction uint32
		x, y    int
	}{
		{1, "Spearline", model.UnitInfantry, 1, 2, 1},
		{2, "Outriders", model.UnitCavalry, 1, 2, 2},
		{3, "Longbows", model.UnitRanged, 2, demoMapWidth - 3, demoMapHeight - 2},
		{4, "Rampart Guard", model.UnitInfantry, 2, demoMapWidth - 3, demoMapHeight - 3},
		{5, "Trebuchet", model.UnitSiege, 3, demoMapWidth - 3, 1},
		{6, "Field Medics", model.UnitSupport, 3, demoMapWidth - 3, 2},
	}
	for _, u := range units {
		view.AddUnit(model.NewUnit(u.id, u.name, u.unit, u.faction, model.NewPosition(u.x, u.y)))
	}
}
