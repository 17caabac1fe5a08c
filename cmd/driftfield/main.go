package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/storage"
	"github.com/san-kum/driftfield/internal/theme"
	"github.com/san-kum/driftfield/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	themeName  string
	seed       int64
	count      int
	width      int
	height     int
	fps        int
	frames     int
	every      int
	runs       int
	particle   int
	frameNum   int
	outFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "driftfield",
		Short:        "ambient drifting particle field",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".driftfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "particle preset")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&themeName, "theme", "", "force theme (dark or light)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&count, "count", field.DefaultCount, "number of particles")

	addWindowFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addWindowFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "animate the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run the field headless and save the frames",
		Args:  cobra.NoArgs,
		RunE:  recordRun,
	}
	recordCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "viewport width")
	recordCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "viewport height")
	recordCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to render")
	recordCmd.Flags().IntVar(&every, "every", 1, "keep every n-th frame")
	recordCmd.Flags().IntVar(&runs, "runs", 1, "parallel runs on consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one particle's path",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", 0, "particle index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameNum, "frame", -1, "frame number (-1 for the last recorded)")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list particle presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(out, "  %-8s %4d particles  speed %.2fx%.2f  %s\n", name, p.Count, p.SpeedX, p.SpeedY, p.Color)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective config to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, recordCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, presetsCmd, initCmd)
	return rootCmd
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

// loadConfig builds the effective config: defaults or --config file, then
// --preset, then individually set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Particles.Count = count
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupTheme returns the shared theme flag and a toggler persisting to the
// data directory. A theme forced by config or flag is applied without
// touching the stored preference.
func setupTheme(cfg *config.Config) (*theme.Cell, *theme.Toggler, error) {
	store := theme.NewStore(filepath.Join(dataDir, theme.DefaultFile))
	cell := theme.NewCell(false)
	if cfg.Theme != "" {
		cell.SetDark(cfg.Theme == theme.Dark)
	} else if err := theme.Restore(cell, store); err != nil {
		return nil, nil, err
	}
	return cell, theme.NewToggler(cell, store), nil
}

func resolveSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func newAnimator(cfg *config.Config, cell *theme.Cell) (*field.Animator, int64, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, 0, err
	}
	s := resolveSeed(cfg)
	anim, err := field.New(cell, rand.New(rand.NewSource(s)), opts)
	if err != nil {
		return nil, 0, err
	}
	return anim, s, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cell, toggler, err := setupTheme(cfg)
	if err != nil {
		return err
	}
	anim, s, err := newAnimator(cfg, cell)
	if err != nil {
		return err
	}
	logger.Debug("starting window", "seed", s, "particles", cfg.Particles.Count, "theme", cell.Name())
	return gui.Run(cmd.Context(), anim, toggler, logger, cfg.Window.Width, cfg.Window.Height, cfg.Window.FPS)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cell, toggler, err := setupTheme(cfg)
	if err != nil {
		return err
	}
	anim, _, err := newAnimator(cfg, cell)
	if err != nil {
		return err
	}
	// the terminal owns stdout; only errors are worth showing afterwards
	logger := newLogger(cmd.ErrOrStderr(), charmlog.ErrorLevel)
	return viz.Run(cmd.Context(), anim, toggler, logger, cfg.Window.FPS)
}

func recordRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cell, _, err := setupTheme(cfg)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	simCfg := sim.Config{
		Options: opts,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Frames:  frames,
		Every:   every,
		Seed:    resolveSeed(cfg),
	}
	if err := simCfg.Validate(); err != nil {
		return err
	}

	p := newProgress(logger)
	results, err := sim.NewEnsemble(cell, runs, simCfg.Seed).Run(ctx, simCfg)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("rendered %d run(s) of %d frames", len(results), frames))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		meta := storage.RunMetadata{
			Seed:    res.Seed,
			Preset:  preset,
			Count:   res.Count,
			Width:   simCfg.Width,
			Height:  simCfg.Height,
			Frames:  res.Frames,
			Every:   simCfg.Every,
			Theme:   cell.Name(),
			Color:   cfg.Particles.Color,
			Alpha:   opts.Fill(cell.Dark()).A,
			Metrics: res.Metrics,
		}
		runID, err := st.Save(meta, res.Snapshots)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Debug("run saved", "id", runID, "seed", res.Seed, "snapshots", len(res.Snapshots))

		fmt.Fprintf(out, "run id: %s\n", runID)
		fmt.Fprintf(out, "seed: %d\n", res.Seed)
		fmt.Fprintf(out, "frames: %d\n", res.Frames)
		fmt.Fprintf(out, "snapshots: %d\n", len(res.Snapshots))
		fmt.Fprintln(out, "metrics:")
		for _, name := range sortedKeys(res.Metrics) {
			fmt.Fprintf(out, "  %s: %.6f\n", name, res.Metrics[name])
		}
		fmt.Fprintln(out)
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "TIME", "PARTICLES", "SIZE", "FRAMES", "THEME", "PRESET")

	for _, run := range runs {
		t.Row(
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", run.Count),
			fmt.Sprintf("%dx%d", run.Width, run.Height),
			fmt.Sprintf("%d", run.Frames),
			run.Theme,
			run.Preset,
		)
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	xs, ys, err := storage.Series(snaps, particle)
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "particle: %d of %d\n", particle, meta.Count)
	fmt.Fprintf(out, "samples: %d\n\n", len(xs))

	for _, s := range []struct {
		data    []float64
		caption string
	}{
		{xs, fmt.Sprintf("x (0..%d)", meta.Width)},
		{ys, fmt.Sprintf("y (0..%d)", meta.Height)},
	} {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no recorded frames", runID)
	}

	snap := snaps[len(snaps)-1]
	if frameNum >= 0 {
		found := false
		for _, sn := range snaps {
			if sn.Frame == frameNum {
				snap, found = sn, true
				break
			}
		}
		if !found {
			return fmt.Errorf("frame %d was not recorded in run %s (every %d)", frameNum, runID, meta.Every)
		}
	}

	paint, err := config.ParsePaint(meta.Color)
	if err != nil {
		return err
	}
	svg := export.SnapshotToSVG(snap, meta.Width, meta.Height, paint.WithAlpha(meta.Alpha), meta.Theme == theme.Dark)

	if outFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	loggerFromContext(cmd.Context()).Info("svg written", "path", outFile, "frame", snap.Frame)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", args[0])
	return nil
}
