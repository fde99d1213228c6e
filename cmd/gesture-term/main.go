// Command gesture-term recognizes mouse gestures in a terminal. Press and drag
// with the primary button; recognized events scroll past on screen and are
// written to the log file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/gestures/internal/config"
	"github.com/banshee-data/gestures/internal/gesture"
	"github.com/banshee-data/gestures/internal/monitoring"
	"github.com/banshee-data/gestures/internal/recognizable"
	"github.com/banshee-data/gestures/internal/termsurface"
	"github.com/banshee-data/gestures/internal/timeutil"
	"github.com/banshee-data/gestures/internal/version"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a gesture tuning JSON file (defaults when empty)")
		logPath     = flag.String("log", "gesture-term.log", "log file; the terminal is taken by the UI")
		cellWidth   = flag.Float64("cell-width", termsurface.DefaultCellWidth, "pixels per terminal column")
		cellHeight  = flag.Float64("cell-height", termsurface.DefaultCellHeight, "pixels per terminal row")
		recordPath  = flag.String("record", "", "write the session's pointer samples to this JSON-lines file on exit")
		debug       = flag.Bool("debug", false, "log stale timers and discarded taps")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("gesture-term %s\n", version.String())
		return
	}

	cfg := config.DefaultGestureConfig()
	if *configPath != "" {
		loaded, err := config.LoadGestureConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	if *debug {
		monitoring.SetDebugLogger(log.Printf)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to initialize screen: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec *recorder
	if *recordPath != "" {
		rec = &recorder{}
	}
	runErr := run(ctx, stop, screen, cfg, *cellWidth, *cellHeight, rec)
	if rec != nil {
		if err := saveRecording(*recordPath, rec.samples); err != nil {
			log.Printf("gesture-term: %v", err)
		} else {
			monitoring.Logf("gesture-term: recorded %d samples to %s", len(rec.samples), *recordPath)
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		screen.Fini()
		log.Fatalf("gesture-term: %v", runErr)
	}
}

// run drives the recognizers from screen events until ctx is done or the user
// quits. Every sample, timer and redraw happens on the loop goroutine. A
// non-nil rec receives every sample.
func run(ctx context.Context, quit func(), screen tcell.Screen, cfg *config.GestureConfig, cellWidth, cellHeight float64, rec *recorder) error {
	loop := timeutil.NewLoop(timeutil.RealClock{}, 256)
	defer loop.Close()

	agg, err := recognizable.FromConfig(cfg, loop)
	if err != nil {
		return err
	}
	defer agg.Close()

	adapter := termsurface.New(loop, cellWidth, cellHeight)
	agg.Attach(adapter)
	if rec != nil {
		adapter.Listen(rec.add)
	}

	v := newView(agg.Names())
	agg.Subscribe(func(ev gesture.Event) {
		line := describe(ev)
		monitoring.Logf("gesture: %s", line)
		v.push(line)
		v.draw(screen)
	})
	agg.WatchState(func(s recognizable.State) {
		v.fingers = s.Fingers
		v.draw(screen)
	})

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Post(func() {
				if !handle(ev, adapter, screen, v) {
					quit()
				}
			})
		}
	}()

	loop.Post(func() { v.draw(screen) })
	return loop.Run(ctx)
}

// handle processes one screen event and reports whether the UI keeps running.
func handle(ev tcell.Event, adapter *termsurface.Adapter, screen tcell.Screen, v *view) bool {
	if adapter.HandleEvent(ev) {
		return true
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'c' {
			v.clear()
			v.draw(screen)
		}
	case *tcell.EventResize:
		adapter.Leave()
		screen.Sync()
		v.draw(screen)
	case *tcell.EventFocus:
		if !ev.Focused {
			adapter.Leave()
		}
	}
	return true
}
