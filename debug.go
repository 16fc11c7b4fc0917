package tinsel

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	projectTime time.Duration
	sortTime    time.Duration
	drawTime    time.Duration
	sprites     int
}

// debugLogf prints a diagnostic line to stderr when debug mode is on.
func (s *Scene) debugLogf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tinsel] "+format+"\n", args...)
}

// debugLog prints frame timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.projectTime + stats.sortTime + stats.drawTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[tinsel] project: %v | sort: %v | draw: %v | total: %v | sprites: %d\n",
		stats.projectTime, stats.sortTime, stats.drawTime, total, stats.sprites)
}
