// Package display renders a solved fingering for a terminal: a static
// text summary (summary.go) and an interactive Bubble Tea preview
// (preview.go).
package display

import (
	"fmt"
	"strings"

	"violin-fingering/fingering"
)

// ShowSummary prints a header box plus one line per fingering item,
// modeled on a box-drawing header and per-line
// listing style.
func ShowSummary(title string, bpm float64, out fingering.Output) {
	info := fmt.Sprintf("Tempo: %.0f BPM | Total cost: %.3f", bpm, out.TotalCost)

	maxLen := len(title)
	if len(info) > maxLen {
		maxLen = len(info)
	}

	fmt.Printf("┌─ %s %s┐\n", title, strings.Repeat("─", maxLen-len(title)+1))
	fmt.Printf("│ %s%s │\n", info, strings.Repeat(" ", maxLen-len(info)))
	fmt.Printf("└%s┘\n\n", strings.Repeat("─", maxLen+2))

	for _, ev := range out.Events {
		if ev.Type == "R" {
			fmt.Printf("  %-6s rest %.2f beats\n", "", ev.DurationBeats)
			continue
		}
		fmt.Printf("  %-4s str=%s finger=%d stop=%d anchor=%d shape=(%d,%d,%d) settled=%v\n",
			ev.Note, ev.String, ev.Finger, ev.StopSemitones, ev.AnchorSemitones,
			ev.O2, ev.O3, ev.O4, ev.SettledSinceLastShift)
	}
}
