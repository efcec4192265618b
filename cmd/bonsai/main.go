package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/san-kum/bonsai/internal/analysis"
	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/export"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/optim"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
	"github.com/san-kum/bonsai/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       uint64
	trunkWidth uint
	timeScale  int
	theme      string
	leafJitter int
	maxFrames  int
	logFile    string
	// Screen size for headless commands; zero means the terminal's
	cols int
	rows int
	// Output
	plain   bool
	format  string
	outFile string
	every   int
	// Survey and search
	runs       int
	fromSeed   uint64
	metricName string
	widths     []uint
	minimize   bool
	// Garden
	name  string
	force bool
)

var logCloser io.Closer

func main() {
	rootCmd := &cobra.Command{
		Use:          "bonsai",
		Short:        "grow ascii bonsai trees in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "garden directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 draws one)")
	pf.UintVar(&trunkWidth, "width", 0, "trunk width (0 draws one)")
	pf.IntVar(&timeScale, "time-scale", config.DefaultTimeScaleMs, "milliseconds per frame")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.IntVar(&leafJitter, "jitter", config.DefaultLeafJitter, "leaf colour jitter (0-255)")
	pf.IntVar(&maxFrames, "max-frames", config.DefaultMaxFrames, "give up after this many frames")
	pf.StringVar(&logFile, "log", "", "write debug log to file")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "browse presets and saved trees",
		RunE:  runPick,
	}

	growCmd := &cobra.Command{
		Use:   "grow",
		Short: "grow a tree and print it",
		Args:  cobra.NoArgs,
		RunE:  runGrow,
	}
	addScreenFlags(growCmd)
	growCmd.Flags().BoolVar(&plain, "plain", false, "print without colour")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "grow a tree and describe it",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	addScreenFlags(inspectCmd)

	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "grow many seeds and compare them",
		Args:  cobra.NoArgs,
		RunE:  runSurvey,
	}
	addScreenFlags(surveyCmd)
	surveyCmd.Flags().IntVar(&runs, "runs", 20, "number of trees")
	surveyCmd.Flags().Uint64Var(&fromSeed, "from", 1, "first seed")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "find the seed and trunk width that score best on a metric",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addScreenFlags(searchCmd)
	searchCmd.Flags().IntVar(&runs, "runs", 20, "seeds per trunk width")
	searchCmd.Flags().Uint64Var(&fromSeed, "from", 1, "first seed")
	searchCmd.Flags().StringVar(&metricName, "metric", "leaves", "metric to score")
	searchCmd.Flags().UintSliceVar(&widths, "widths", []uint{5, 9, 13}, "trunk widths to try")
	searchCmd.Flags().BoolVar(&minimize, "min", false, "prefer the lowest score")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "grow a tree and write it as text, ansi, svg, json or gif",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addScreenFlags(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "text", "text, ansi, svg, json or gif")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&every, "every", 10, "frames between gif snapshots")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "grow a tree and save its seed to the garden",
		Args:  cobra.NoArgs,
		RunE:  runSave,
	}
	addScreenFlags(saveCmd)
	saveCmd.Flags().StringVar(&name, "name", "", "name for the saved tree")

	gardenCmd := &cobra.Command{
		Use:   "garden",
		Short: "manage saved trees",
	}
	gardenListCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved trees",
		Args:  cobra.NoArgs,
		RunE:  listGarden,
	}
	gardenShowCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "regrow a saved tree",
		Args:  cobra.ExactArgs(1),
		RunE:  showGarden,
	}
	gardenShowCmd.Flags().BoolVar(&plain, "plain", false, "print without colour")
	gardenRmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "remove a saved tree",
		Args:  cobra.ExactArgs(1),
		RunE:  removeGarden,
	}
	gardenCmd.AddCommand(gardenListCmd, gardenShowCmd, gardenRmCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(pickCmd, growCmd, inspectCmd, surveyCmd, searchCmd, exportCmd, saveCmd, gardenCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addScreenFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cols, "cols", 0, "screen columns (default terminal width)")
	cmd.Flags().IntVar(&rows, "rows", 0, "screen rows (default terminal height)")
}

// setupLogging sends the standard logger to --log, or discards it so
// nothing is written over the viewer.
func setupLogging() error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(logFile, "bonsai")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logCloser = f
	return nil
}

// resolveConfig layers defaults, the preset, the config file and then
// any flags given on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.TrunkWidth = trunkWidth
	}
	if flags.Changed("time-scale") {
		cfg.TimeScaleMs = timeScale
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("jitter") {
		cfg.LeafJitter = leafJitter
	}
	if flags.Changed("max-frames") {
		cfg.MaxFrames = maxFrames
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if !viz.HasTheme(cfg.Theme) {
		return nil, fmt.Errorf("%w: unknown theme %q (available: %v)", config.ErrInvalid, cfg.Theme, viz.ThemeNames())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// screenSize picks the headless screen: flags first, then the terminal,
// then 80x24.
func screenSize() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(os.Stdout.Fd()); err == nil && tw > 0 && th > 0 {
		w, h = tw, th-1
	}
	if cols > 0 {
		w = cols
	}
	if rows > 0 {
		h = rows
	}
	return w, h
}

// grow plants and fully grows a tree on a canvas. A partial result is
// returned with the error when the frame limit is hit.
func grow(ctx context.Context, opts bonsai.Options, cfg *config.Config, record bool, observers ...func(*bonsai.Tree, *viz.Canvas)) (*sim.Result, *viz.Canvas, error) {
	tree, err := bonsai.Plant(opts)
	if err != nil {
		return nil, nil, err
	}
	canvas := viz.NewCanvas(opts.Screen.Width, opts.Screen.Height)

	runner := sim.New(metrics.Default()...)
	for _, obs := range observers {
		runner.AddObserver(sim.ObserverFunc(func(t *bonsai.Tree) { obs(t, canvas) }))
	}

	log.Printf("growing seed=%d screen=%dx%d", tree.Seed(), opts.Screen.Width, opts.Screen.Height)
	result, err := runner.Run(ctx, tree, canvas, sim.Config{MaxFrames: cfg.MaxFrames, Record: record})
	if result != nil {
		log.Printf("seed=%d frames=%d done=%v", result.Seed, result.Frames, result.Done)
	}
	return result, canvas, err
}

func colour() bool {
	return !plain && isatty.IsTerminal(os.Stdout.Fd())
}

func printCanvas(c *viz.Canvas) {
	if colour() {
		fmt.Println(c.Crop().Render())
		return
	}
	fmt.Print(export.Text(c))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, storage.New(cfg.DataDir))
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunPicker(storage.New(cfg.DataDir), cfg)
}

func runGrow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, h := screenSize()
	result, canvas, err := grow(cmd.Context(), cfg.Options(w, h), cfg, false)
	if canvas != nil {
		printCanvas(canvas)
	}
	if result != nil {
		fmt.Fprintf(os.Stderr, "seed %d\n", result.Seed)
	}
	return err
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, h := screenSize()
	result, _, err := grow(cmd.Context(), cfg.Options(w, h), cfg, false)
	if err != nil {
		return err
	}

	tree := result.Tree
	look := tree.Appearance()
	fmt.Printf("seed: %d\n", tree.Seed())
	fmt.Printf("screen: %dx%d\n", w, h)
	fmt.Printf("trunk width: %d (leaf bonus %d)\n", look.TrunkWidth, look.TrunkWidthBonus)
	fmt.Printf("leaves: %s %s, %d per branch tip, scatter x %d..%d y %d..%d\n",
		look.LeafFamily, look.LeafColor, look.LeafCount,
		look.Scatter.MinX, look.Scatter.MaxX, look.Scatter.MinY, look.Scatter.MaxY)
	fmt.Printf("pot: %s\n", look.Pot)

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if profile := metrics.TrunkProfile(tree); len(profile) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(profile, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("trunk width by step")))
	}
	return nil
}

func printMetrics(ms map[string]float64) {
	names := make([]string, 0, len(ms))
	for n := range ms {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %g\n", n, ms[n])
	}
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	w, h := screenSize()

	ens := sim.NewEnsemble(sim.New(metrics.Default()...), cfg.Options(w, h), runs, fromSeed)
	results, err := ens.Run(cmd.Context(), sim.Config{MaxFrames: cfg.MaxFrames})
	if err != nil {
		if !errors.Is(err, sim.ErrFrameLimit) || len(results) == 0 {
			return err
		}
		log.Printf("survey: %v", err)
		fmt.Fprintf(os.Stderr, "skipped %d of %d seeds that hit the frame limit\n", runs-len(results), runs)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tTRUNK\tFRAMES\tBRANCHES\tLEAVES\tHEIGHT\tSPREAD")
	leaves := make([]float64, len(results))
	for i, r := range results {
		m := r.Metrics
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%g\t%g\n",
			r.Seed, m["trunk_width"], m["frames"], m["branches"], m["leaves"], m["trunk_height"], m["spread"])
		leaves[i] = m["leaves"]
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Println("\nsummary:")
	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMIN\tMEDIAN\tMEAN\tSD\tMAX")
	for _, m := range metrics.Default() {
		st := analysis.Summarize(analysis.Values(results, m.Name()))
		fmt.Fprintf(tw, "%s\t%g\t%g\t%.1f\t%.1f\t%g\n", m.Name(), st.Min, st.Median, st.Mean, st.StdDev, st.Max)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts, edges := analysis.Histogram(leaves, 8)
	fmt.Println("\nleaves:")
	for i, c := range counts {
		fmt.Printf("  %6.0f %s %d\n", edges[i], strings.Repeat("█", c), c)
	}

	if len(leaves) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(leaves, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption(fmt.Sprintf("leaves by seed from %d", results[0].Seed))))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	var metric metrics.Metric
	names := make([]string, 0)
	for _, m := range metrics.Default() {
		names = append(names, m.Name())
		if m.Name() == metricName {
			metric = m
		}
	}
	if metric == nil {
		return fmt.Errorf("unknown metric: %s (available: %v)", metricName, names)
	}

	seeds := make([]uint64, runs)
	for i := range seeds {
		seeds[i] = fromSeed + uint64(i)
	}

	w, h := screenSize()
	best, err := optim.NewGridSearch(widths, seeds).Search(cmd.Context(), cfg.Options(w, h), sim.Config{MaxFrames: cfg.MaxFrames}, metric, !minimize)
	if err != nil {
		return err
	}

	fmt.Printf("best of %d trees: seed %d, trunk width %d, %s %g\n", best.Tried, best.Seed, best.TrunkWidth, metric.Name(), best.Value)
	fmt.Printf("regrow with: bonsai grow --seed %d --width %d --cols %d --rows %d\n", best.Seed, best.TrunkWidth, w, h)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, h := screenSize()

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "text", "ansi", "svg":
		_, canvas, err := grow(cmd.Context(), cfg.Options(w, h), cfg, false)
		if err != nil {
			return err
		}
		var s string
		switch format {
		case "text":
			s = export.Text(canvas)
		case "ansi":
			s = export.ANSI(canvas)
		default:
			s = export.CanvasToSVG(canvas, 10) + "\n"
		}
		_, err = io.WriteString(out, s)
		return err

	case "json":
		result, _, err := grow(cmd.Context(), cfg.Options(w, h), cfg, true)
		if err != nil {
			return err
		}
		return export.ExportJSON(out, export.NewExportData(result))

	case "gif":
		if every <= 0 {
			return fmt.Errorf("every must be positive, got %d", every)
		}
		anim := export.NewAnimation(cfg.TimeScaleMs / 10)
		capture := func(t *bonsai.Tree, c *viz.Canvas) {
			if t.Frames()%every == 0 || t.Done() {
				anim.Capture(c)
			}
		}
		if _, _, err := grow(cmd.Context(), cfg.Options(w, h), cfg, false, capture); err != nil {
			return err
		}
		log.Printf("gif: %d frames", anim.Len())
		return anim.Encode(out)
	}
	return fmt.Errorf("unknown format: %s (available: text, ansi, svg, json, gif)", format)
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, h := screenSize()
	result, _, err := grow(cmd.Context(), cfg.Options(w, h), cfg, false)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	rec := storage.NewRecord(result.Tree, result.Metrics)
	rec.Name = name
	id, err := st.Save(rec)
	if err != nil {
		return err
	}

	fmt.Printf("saved %s (seed %d)\n", id, rec.Seed)
	return nil
}

func listGarden(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	recs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("the garden is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSAVED\tSEED\tTRUNK\tSCREEN\tLEAVES")

	for _, r := range recs {
		trunk := "random"
		if r.TrunkWidth > 0 {
			trunk = fmt.Sprint(r.TrunkWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%dx%d\t%g\n",
			r.ID,
			r.Name,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Seed,
			trunk,
			r.Width, r.Height,
			r.Metrics["leaves"],
		)
	}

	return w.Flush()
}

func showGarden(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rec, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}

	result, canvas, err := grow(cmd.Context(), rec.Options(), cfg, false)
	if canvas != nil {
		printCanvas(canvas)
	}
	if err != nil {
		return err
	}
	if rec.Name != "" {
		fmt.Printf("%s, ", rec.Name)
	}
	fmt.Printf("seed %d, saved %s\n", rec.Seed, rec.Timestamp.Format("2006-01-02"))
	printMetrics(result.Metrics)
	return nil
}

func removeGarden(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := storage.New(cfg.DataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSEED\tTRUNK\tMS/FRAME\tTHEME\tJITTER")
	for _, n := range config.ListPresets() {
		p := config.GetPreset(n)
		s, trunk := "random", "random"
		if p.Seed != 0 {
			s = fmt.Sprint(p.Seed)
		}
		if p.TrunkWidth != 0 {
			trunk = fmt.Sprint(p.TrunkWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n", n, s, trunk, p.TimeScaleMs, p.Theme, p.LeafJitter)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "bonsai.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
