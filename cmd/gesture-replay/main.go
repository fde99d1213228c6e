// Command gesture-replay runs a recorded pointer session through the
// recognizers on a manual clock and prints every gesture event as a JSON
// line. The same recording always produces the same output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/gestures/internal/config"
	"github.com/banshee-data/gestures/internal/monitoring"
	"github.com/banshee-data/gestures/internal/units"
	"github.com/banshee-data/gestures/internal/version"
)

func main() {
	var (
		inPath      = flag.String("in", "", "path to a JSON-lines pointer recording (- for stdin)")
		configPath  = flag.String("config", "", "path to a gesture tuning JSON file (defaults when empty)")
		unitsFlag   = flag.String("units", units.PxPerMs, "velocity units in the output: "+units.GetValidUnitsString())
		tail        = flag.Duration("tail", time.Second, "clock advance after the last sample, to flush pending taps")
		debug       = flag.Bool("debug", false, "log stale timers and discarded taps")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("gesture-replay %s\n", version.String())
		return
	}
	if *inPath == "" {
		log.Fatal("-in is required")
	}
	if !units.IsValid(*unitsFlag) {
		log.Fatalf("invalid -units %q, want one of: %s", *unitsFlag, units.GetValidUnitsString())
	}
	if *debug {
		monitoring.SetDebugLogger(log.Printf)
	}

	cfg := config.DefaultGestureConfig()
	if *configPath != "" {
		loaded, err := config.LoadGestureConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	in := os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatalf("failed to open recording: %v", err)
		}
		defer f.Close()
		in = f
	}

	stats, err := replay(in, os.Stdout, replayOptions{Config: cfg, Units: *unitsFlag, Tail: *tail})
	if err != nil {
		log.Fatalf("replay failed: %v", err)
	}
	log.Printf("replayed %d samples over %s: %d events", stats.Samples, stats.Span, stats.Events)
}
