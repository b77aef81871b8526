package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/phasetime/internal/analysis"
	"github.com/san-kum/phasetime/internal/automation"
	"github.com/san-kum/phasetime/internal/config"
	"github.com/san-kum/phasetime/internal/export"
	"github.com/san-kum/phasetime/internal/gui"
	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/storage"
	"github.com/san-kum/phasetime/internal/surface"
	"github.com/san-kum/phasetime/internal/tui"
	"github.com/san-kum/phasetime/internal/viz"
)

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store := params.NewStore(cfg.Params)
	proc := startAudio(cfg, store, log)
	if proc != nil {
		defer proc.Stop()
	}
	return gui.Run(gui.Options{
		Config: cfg,
		Store:  store,
		Audio:  proc,
		Logger: log,
		OutDir: outDir,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the alt screen owns the terminal; log only to a file
	log, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	store := params.NewStore(cfg.Params)
	proc := startAudio(cfg, store, log)
	if proc != nil {
		defer proc.Stop()
	}
	return tui.Run(tui.Options{
		Config: cfg,
		Store:  store,
		Audio:  proc,
		Logger: log,
		OutDir: outDir,
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, id, err := target(cfg, args)
	if err != nil {
		return err
	}
	cfg.Level = id
	log, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(duration*float64(time.Second)))
		defer cancel()
	}

	store := params.NewStore(cfg.Params)
	proc := startAudio(cfg, store, log)
	if proc != nil {
		defer proc.Stop()
	}
	return tui.Watch(ctx, os.Stdout, tui.WatchOptions{
		Config: cfg,
		Store:  store,
		Cols:   cols,
		Rows:   rows,
		Color:  !noColor,
		Logger: log,
	})
}

func listLevels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSCENE\tSUBTITLE")
	fmt.Fprintln(w, "--\t-----\t-----\t--------")
	for _, lv := range level.All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", lv.ID, lv.Title, lv.Scene, lv.Subtitle)
	}
	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, id, err := target(cfg, args)
	if err != nil {
		return err
	}
	lv := level.MustGet(id)

	fmt.Printf("%d. %s\n", lv.ID, lv.Title)
	fmt.Printf("   %s\n\n", lv.Subtitle)
	fmt.Println(lv.Description)
	if lv.Math != "" {
		fmt.Printf("\n  %s\n", lv.Math)
	}
	sections := []struct{ name, text string }{
		{"Problem", lv.Companion.Problem},
		{"Idea", lv.Companion.Idea},
		{"Why it matters", lv.Companion.Why},
		{"Bridge", lv.Companion.Bridge},
	}
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		fmt.Printf("\n%s\n%s\n%s\n", s.name, strings.Repeat("-", len(s.name)), s.text)
	}
	if lv.Link != "" {
		fmt.Printf("\n%s\n", lv.Link)
	}
	return nil
}

func outputPath(man *export.Manifest, ext string) string {
	if outFile != "" {
		return outFile
	}
	return filepath.Join(outDir, man.Name("phasetime", ext))
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, id, err := target(cfg, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var last float64
	surf, err := playback(cfg, kind, id, simTime, frameRate, log, func(_ *surface.Surface, t float64, _ int) error {
		last = t
		return nil
	})
	if err != nil {
		return err
	}

	man := export.NewManifest(id, string(kind), cfg.Seed, cfg.Params)
	man.Frames, man.Duration = 1, simTime
	path := outputPath(man, "png")
	if err := export.WritePNG(path, surf.Image()); err != nil {
		return err
	}
	log.Info("frame written", "path", path, "kind", kind, "t", last)
	fmt.Println(path)
	return nil
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, id, err := target(cfg, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	fps := max(frameRate, 1)
	delay := max(100/fps, 2)
	rec := export.NewGIFRecorder(min(cfg.Display.Width, 480), delay, export.DefaultMaxFrames)
	_, err = playback(cfg, kind, id, duration, fps, log, func(s *surface.Surface, _ float64, _ int) error {
		if rec.Full() {
			return nil
		}
		return rec.Add(s.Image())
	})
	if err != nil {
		return err
	}

	man := export.NewManifest(id, string(kind), cfg.Seed, cfg.Params)
	man.Frames, man.Duration = rec.Len(), duration
	path := outputPath(man, "gif")
	if err := rec.Save(path); err != nil {
		return err
	}
	man.Files = append(man.Files, filepath.Base(path))
	if err := man.Write(strings.TrimSuffix(path, filepath.Ext(path)) + ".json"); err != nil {
		return err
	}
	log.Info("recording saved", "path", path, "frames", rec.Len(), "kind", kind)
	fmt.Println(path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, id, err := target(cfg, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	surf, err := playback(cfg, kind, id, simTime, frameRate, log, nil)
	if err != nil {
		return err
	}
	canvas := viz.NewCanvas(max(cols, 10), max(rows, 4))
	canvas.FromImage(surf.Image(), surf.Background(), viz.DefaultThreshold)

	man := export.NewManifest(id, string(kind), cfg.Seed, cfg.Params)
	man.Frames, man.Duration = 1, simTime
	path := outputPath(man, "svg")
	if err := os.WriteFile(path, []byte(export.CanvasToSVG(canvas, 4, surf.Background())), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	fmt.Println(path)
	return nil
}

func analyzeScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, id, err := target(cfg, args)
	if err != nil {
		return err
	}

	// traces are always reproducible
	traceSeed := cfg.Seed
	if traceSeed == 0 {
		traceSeed = 1
	}
	opts := analysis.Options{
		Duration: duration,
		Dt:       sampleDt,
		Seed:     traceSeed,
		Params:   cfg.Params,
	}

	if sweepField != "" {
		points, err := analysis.Sweep(kind, sweepField, sweepSteps, opts)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", sweepField, err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tPEAK HZ\tPOWER\tMEAN\tSTD\n", strings.ToUpper(sweepField))
		peaks := make([]float64, len(points))
		for i, p := range points {
			fmt.Fprintf(w, "%.3f\t%.3f\t%.4g\t%.4f\t%.4f\n", p.Param, p.Dominant.Freq, p.Dominant.Power, p.Mean, p.Std)
			peaks[i] = p.Dominant.Freq
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(peaks,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s: dominant frequency vs %s", kind, sweepField))))
		return nil
	}

	series, err := analysis.Trace(kind, opts)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(series.Values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s luminance over %.0fs", kind, series.Times[len(series.Times)-1]))))

	printSummary(series)

	if portrait {
		fmt.Println()
		fmt.Println(analysis.NewPortrait(series).ASCII(60, 20))
	}

	if saveRun {
		st := storage.New(runsDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(series, id, opts.Seed, cfg.Params)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nsaved %s\n", runID)
	}

	if svgFile != "" {
		f, err := os.Create(svgFile)
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		if err := export.TraceToSVG(f, series.Times, series.Values, 800, 300, "#333333"); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Println(svgFile)
	}
	return nil
}

func printSummary(series *analysis.Series) {
	peak := analysis.Dominant(series)
	fmt.Printf("\nmean %.4f  std %.4f  dominant %.3f Hz (period %s)\n",
		series.Mean(), series.Std(), peak.Freq, period(peak.Freq))

	_, power := analysis.Spectrum(series.Values, series.Dt)
	bands := analysis.Bands(power, 8)
	if len(bands) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(bands,
		asciigraph.Height(6),
		asciigraph.Width(40),
		asciigraph.Caption("spectrum, 8 bands")))
}

func period(freq float64) string {
	if freq <= 0 {
		return "none"
	}
	return time.Duration(float64(time.Second) / freq).Round(time.Millisecond).String()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(runsDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found in", runsDir)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSPEED\tOMEGA\tCOUPLE\tPEAK HZ")
	fmt.Fprintln(w, "--\t-----\t----\t-----\t-----\t------\t-------")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.3f\n",
			r.ID, r.Kind, r.Timestamp.Format("2006-01-02 15:04"),
			r.Params.Speed, r.Params.Omega, r.Params.Couple, r.PeakHz)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}
	fmt.Println(asciigraph.Plot(series.Values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s: %s luminance", args[0], series.Kind))))
	printSummary(series)
	if portrait {
		fmt.Println()
		fmt.Println(analysis.NewPortrait(series).ASCII(60, 20))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Seed == 0 {
		sc.Seed = cfg.Seed
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, cfg.Params, storage.New(runsDir), log)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tSPEED\tOMEGA\tCOUPLE\tMEAN\tPEAK HZ\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.4f\t%.3f\t%s\n",
			r.Step, r.Kind, r.Params.Speed, r.Params.Omega, r.Params.Couple,
			r.Series.Mean(), r.Peak.Freq, r.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEED\tOMEGA\tCOUPLE")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", name, p.Speed, p.Omega, p.Couple)
	}
	return w.Flush()
}
