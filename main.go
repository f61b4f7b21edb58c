package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"violin-fingering/batch"
	"violin-fingering/display"
	"violin-fingering/fingering"
	"violin-fingering/midi"
	"violin-fingering/score"
	"violin-fingering/theory"
)

// Global output-mode flags (set via parseArgs).
var (
	jsonOutput   bool
	midiOutPath  string
	previewMode  bool
	batchWorkers = 4
)

func main() {
	args := parseArgs(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	switch command {
	case "solve":
		if len(args) < 2 {
			fmt.Println("Error: solve requires a score file")
			printUsage()
			os.Exit(1)
		}
		solveScore(args[1])
	case "batch":
		if len(args) < 2 {
			fmt.Println("Error: batch requires a directory")
			printUsage()
			os.Exit(1)
		}
		batchSolve(args[1])
	case "tunings":
		listTunings()
	default:
		printUsage()
		os.Exit(1)
	}
}

// parseArgs extracts flags and returns remaining args.
func parseArgs(args []string) []string {
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--json":
			jsonOutput = true
		case arg == "--preview":
			previewMode = true
		case arg == "--midi":
			if i+1 < len(args) {
				midiOutPath = args[i+1]
				i++
			} else {
				fmt.Println("Error: --midi requires a path")
				os.Exit(1)
			}
		case strings.HasPrefix(arg, "--midi="):
			midiOutPath = strings.TrimPrefix(arg, "--midi=")
		case arg == "--workers":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n < 1 {
					fmt.Println("Error: --workers requires a positive integer")
					os.Exit(1)
				}
				batchWorkers = n
				i++
			}
		case arg == "--help" || arg == "-h":
			printUsage()
			os.Exit(0)
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining
}

func solveScore(path string) {
	s, err := score.Load(path)
	if err != nil {
		fmt.Printf("Error loading score: %v\n", err)
		os.Exit(1)
	}

	out, err := fingering.Solve(s.Params(), s.FingeringEvents())
	if err != nil {
		fmt.Printf("Error solving fingering: %v\n", err)
		os.Exit(1)
	}

	if midiOutPath != "" {
		if err := exportMIDI(out, s.Piece.BPM, midiOutPath); err != nil {
			fmt.Printf("Error exporting MIDI: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Exported to: %s\n", midiOutPath)
	}

	switch {
	case jsonOutput:
		printJSON(out)
	case previewMode:
		runPreview(s.Piece.Title, s.Piece.BPM, out)
	default:
		display.ShowSummary(s.Piece.Title, s.Piece.BPM, out)
	}
}

func batchSolve(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("Error reading directory: %v\n", err)
		os.Exit(1)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	if len(paths) == 0 {
		fmt.Println("No .yaml score files found")
		return
	}

	results := batch.Solve(paths, batchWorkers)
	failures := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("✗ %s: %v\n", r.Path, r.Err)
			failures++
			continue
		}
		fmt.Printf("✓ %s: total_cost=%.3f (%d events)\n", r.Path, r.Out.TotalCost, len(r.Out.Events))
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func exportMIDI(out fingering.Output, bpm float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return midi.WriteSMF(f, out, bpm)
}

func printJSON(out fingering.Output) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func runPreview(title string, bpm float64, out fingering.Output) {
	model := display.NewPreviewModel(title, bpm, out)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running preview: %v\n", err)
		os.Exit(1)
	}
}

func listTunings() {
	fmt.Println("Available tunings:")
	for _, name := range theory.TuningNames {
		t := theory.GetTuning(name)
		names := make([]string, len(t.Strings))
		for i, s := range t.Strings {
			names[i] = s.Name
		}
		fmt.Printf("  %-10s %s\n", name, strings.Join(names, " "))
	}
}

func printUsage() {
	fmt.Println("Violin Fingering Solver")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  violin-fingering solve <score.yaml>            Solve and print a text summary")
	fmt.Println("  violin-fingering solve <score.yaml> --json     Solve and print JSON")
	fmt.Println("  violin-fingering solve <score.yaml> --preview  Solve and open an interactive preview")
	fmt.Println("  violin-fingering solve <score.yaml> --midi out.mid  Also export a MIDI file")
	fmt.Println("  violin-fingering batch <dir> [--workers N]     Solve every score in a directory")
	fmt.Println("  violin-fingering tunings                       List built-in tunings")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --json           Print the solved fingering as JSON")
	fmt.Println("  --preview        Open an interactive terminal preview")
	fmt.Println("  --midi <path>    Export a MIDI rendering of the fingering")
	fmt.Println("  --workers <n>    Worker count for batch solving (default 4)")
	fmt.Println("  --help, -h       Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  violin-fingering solve examples/c-major-scale.yaml")
	fmt.Println("  violin-fingering solve examples/shift-study.yaml --preview")
	fmt.Println("  violin-fingering batch examples/ --workers 8")
}
