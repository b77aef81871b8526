package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	outDir     string
	// shared overrides; applied only when the flag was set
	levelID   int
	seed      int64
	speed     float64
	omega     float64
	couple    float64
	preset    string
	theme     string
	withAudio bool
	// headless rendering
	sceneKind string
	simTime   float64
	duration  float64
	frameRate int
	width     int
	height    int
	dpr       float64
	outFile   string
	// analysis
	sampleDt   float64
	sweepField string
	sweepSteps int
	portrait   bool
	svgFile    string
	saveRun    bool
	runsDir    string
	// watch
	noColor bool
	cols    int
	rows    int
)

// main registers the phasetime commands. With no subcommand it opens the
// desktop window.
func main() {
	rootCmd := &cobra.Command{
		Use:          "phasetime",
		Short:        "a guided descent into where time comes from",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&outDir, "out-dir", ".", "directory for recordings and screenshots")
	pf.IntVar(&levelID, "level", 0, "starting level")
	pf.Int64Var(&seed, "seed", 0, "random seed for stochastic scenes (0 = fresh each mount)")
	pf.Float64Var(&speed, "speed", 0, "global speed (0.1-3)")
	pf.Float64Var(&omega, "omega", 0, "phasor frequency (0.05-2)")
	pf.Float64Var(&couple, "couple", 0, "coupling strength (0-1)")
	pf.StringVar(&preset, "preset", "", "named parameter preset")
	pf.StringVar(&theme, "theme", "", "terminal theme")
	pf.BoolVar(&withAudio, "audio", false, "play the parameter sonification")
	pf.StringVar(&runsDir, "runs-dir", "runs", "directory for stored traces")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal lab",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [level]",
		Short: "stream a level to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().Float64Var(&duration, "time", 0, "seconds to run (0 = until interrupted)")
	watchCmd.Flags().BoolVar(&noColor, "no-color", false, "plain Braille without ANSI colour")
	watchCmd.Flags().IntVar(&cols, "cols", 80, "view width in cells")
	watchCmd.Flags().IntVar(&rows, "rows", 24, "view height in cells")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "list levels",
		Args:  cobra.NoArgs,
		RunE:  listLevels,
	}

	infoCmd := &cobra.Command{
		Use:   "info [level]",
		Short: "show a level's text and companion notes",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	renderCmd := &cobra.Command{
		Use:   "render [level]",
		Short: "render one frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	addHeadlessFlags(renderCmd)
	renderCmd.Flags().Float64Var(&simTime, "t", 3, "wall seconds of playback to render")
	renderCmd.Flags().StringVar(&outFile, "out", "", "output file (default: generated name in --out-dir)")

	recordCmd := &cobra.Command{
		Use:   "record [level]",
		Short: "record an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordGIF,
	}
	addHeadlessFlags(recordCmd)
	recordCmd.Flags().Float64Var(&duration, "time", 4, "seconds to record")
	recordCmd.Flags().StringVar(&outFile, "out", "", "output file (default: generated name in --out-dir)")

	svgCmd := &cobra.Command{
		Use:   "svg [level]",
		Short: "export a Braille rendering of one frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addHeadlessFlags(svgCmd)
	svgCmd.Flags().Float64Var(&simTime, "t", 3, "wall seconds of playback to render")
	svgCmd.Flags().IntVar(&cols, "cols", 100, "Braille width in cells")
	svgCmd.Flags().IntVar(&rows, "rows", 40, "Braille height in cells")
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default: generated name in --out-dir)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [level]",
		Short: "luminance spectrum of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeScene,
	}
	addHeadlessFlags(analyzeCmd)
	analyzeCmd.Flags().Float64Var(&duration, "time", 20, "seconds to trace")
	analyzeCmd.Flags().Float64Var(&sampleDt, "dt", 1.0/30, "sample interval in seconds")
	analyzeCmd.Flags().StringVar(&sweepField, "sweep", "", "sweep a control (speed, omega, couple) across its range")
	analyzeCmd.Flags().IntVar(&sweepSteps, "steps", 8, "sweep steps")
	analyzeCmd.Flags().BoolVar(&portrait, "portrait", false, "plot luminance against its rate of change")
	analyzeCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trace as SVG")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "store the trace under --runs-dir")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored traces",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&portrait, "portrait", false, "plot luminance against its rate of change")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of traces",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, watchCmd, levelsCmd, infoCmd, renderCmd, recordCmd, svgCmd, analyzeCmd, runsCmd, plotCmd, scenarioCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sceneKind, "scene", "", "render a scene by kind instead of a level")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second of playback")
	cmd.Flags().IntVar(&width, "width", 0, "logical width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "logical height (default from config)")
	cmd.Flags().Float64Var(&dpr, "dpr", 0, "device pixel ratio (default from config)")
}
