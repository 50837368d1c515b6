package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/roomscan-data/pointprep/internal/catalog"
	"github.com/roomscan-data/pointprep/internal/config"
	"github.com/roomscan-data/pointprep/internal/dataset"
	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/report"
	"github.com/roomscan-data/pointprep/internal/scene"
	"github.com/roomscan-data/pointprep/internal/synth"
	"github.com/roomscan-data/pointprep/internal/version"
	"github.com/roomscan-data/pointprep/internal/visual"
	"github.com/roomscan-data/pointprep/internal/voxel"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "synth":
		err = handleSynth(args)
	case "inspect":
		err = handleInspect(args)
	case "sample":
		err = handleSample(args)
	case "plot":
		err = handlePlot(args)
	case "report":
		err = handleReport(args)
	case "catalog":
		err = handleCatalog(args)
	case "version":
		fmt.Printf("pointprep %s\n", version.String())
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pointprep %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pointprep - point cloud scene preparation toolkit

Usage: pointprep <command> [options]

Commands:
  synth      Generate synthetic scenes for testing
  inspect    Print details of one scene file
  sample     Draw augmented samples from a corpus and report timings
  plot       Render a top-down PNG of a scene
  report     Write an HTML corpus report
  catalog    Index scenes into a SQLite catalog
  version    Show pointprep version
  help       Show this help message

Examples:
  pointprep synth --out ./scenes --count 4 --normals
  pointprep inspect --scene ./scenes/synth_000.scene
  pointprep sample --data ./scenes --mode train --count 16
  pointprep plot --scene ./scenes/synth_000.scene --out room.png
  pointprep report --data ./scenes --out corpus.html
  pointprep catalog --data ./scenes --db scenes.db --summary`)
}

func handleSynth(args []string) error {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	out := fs.String("out", ".", "Output directory for generated scenes")
	count := fs.Int("count", 1, "Number of scenes to generate")
	seed := fs.Int64("seed", 1, "Base random seed")
	normals := fs.Bool("normals", false, "Include surface normals")
	prefix := fs.String("prefix", "synth", "Scene name prefix")
	fs.Parse(args)

	if err := os.MkdirAll(*out, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for i := 0; i < *count; i++ {
		g := synth.NewGenerator(*seed + int64(i))
		g.WithNormals = *normals
		name := fmt.Sprintf("%s_%03d", *prefix, i)
		sc := g.Generate(name)
		path := filepath.Join(*out, name+scene.FileExt)
		if err := scene.Save(path, sc); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d points)\n", path, sc.NumPoints())
	}
	return nil
}

func handleInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	path := fs.String("scene", "", "Scene file to inspect")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("--scene is required")
	}
	sc, err := scene.Load(*path)
	if err != nil {
		return err
	}

	box := geom.Bounds(sc.Positions)
	fmt.Printf("name:     %s\n", sc.Name)
	fmt.Printf("points:   %d\n", sc.NumPoints())
	fmt.Printf("normals:  %v\n", sc.HasNormals())
	fmt.Printf("min:      [%.3f %.3f %.3f]\n", box.Min[0], box.Min[1], box.Min[2])
	fmt.Printf("max:      [%.3f %.3f %.3f]\n", box.Max[0], box.Max[1], box.Max[2])

	hist := make(map[int32]int)
	for _, l := range sc.Labels {
		hist[l]++
	}
	labels := make([]int32, 0, len(hist))
	for l := range hist {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(a, b int) bool { return labels[a] < labels[b] })
	fmt.Println("labels:")
	for _, l := range labels {
		fmt.Printf("  %3d: %d\n", l, hist[l])
	}
	return nil
}

func handleSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	data := fs.String("data", ".", "Directory of scene files")
	cfgPath := fs.String("config", "", "Tuning config JSON (optional)")
	mode := fs.String("mode", "train", "Sampler mode: train or test")
	count := fs.Int("count", 8, "Number of samples to draw")
	seed := fs.Int64("seed", 0, "Random seed override (0 = from config)")
	worker := fs.Int("worker", 0, "Worker index for seed decorrelation")
	warmup := fs.Bool("warmup", false, "Keep only the largest scene")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	params := dataset.ParamsFromTuning(cfg)

	st, err := scene.NewStore(scene.StoreConfig{
		Dir:      *data,
		Training: *mode == "train",
		Warmup:   *warmup,
	})
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = cfg.GetSeed()
	}

	var sampler dataset.Sampler
	switch *mode {
	case "train":
		sampler = dataset.NewTrainSampler(st, params, s, *worker, voxel.Grid{}, dataset.NoopBuilder{})
	case "test":
		sampler = dataset.NewTestSampler(st, params, voxel.Grid{}, dataset.NoopBuilder{})
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	n := *count
	if n > sampler.Len() {
		n = sampler.Len()
	}
	start := time.Now()
	totalPoints := 0
	for i := 0; i < n; i++ {
		sample, err := sampler.Sample(i)
		if err != nil {
			return err
		}
		totalPoints += sample.NumPoints()
	}
	elapsed := time.Since(start)

	fmt.Printf("scenes:        %d\n", st.Count())
	fmt.Printf("sampler len:   %d\n", sampler.Len())
	fmt.Printf("samples drawn: %d\n", n)
	if n > 0 {
		fmt.Printf("avg points:    %d\n", totalPoints/n)
		fmt.Printf("per sample:    %v\n", elapsed/time.Duration(n))
	}
	return nil
}

func handlePlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	path := fs.String("scene", "", "Scene file to render")
	out := fs.String("out", "scene.png", "Output PNG path")
	palette := fs.String("palette", config.PresetRoomScan, "Class palette: roomscan or meshscan")
	byColor := fs.Bool("colors", false, "Colour by captured RGB instead of labels")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("--scene is required")
	}
	sc, err := scene.Load(*path)
	if err != nil {
		return err
	}
	p, err := paletteByName(*palette)
	if err != nil {
		return err
	}

	r := visual.NewTopDownRenderer(p)
	if *byColor {
		err = r.RenderColors(sc, *out)
	} else {
		err = r.RenderLabels(sc, *out)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}

func handleReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	data := fs.String("data", ".", "Directory of scene files")
	out := fs.String("out", "corpus.html", "Output HTML path")
	palette := fs.String("palette", config.PresetRoomScan, "Class palette: roomscan or meshscan")
	fs.Parse(args)

	st, err := scene.NewStore(scene.StoreConfig{Dir: *data})
	if err != nil {
		return err
	}
	p, err := paletteByName(*palette)
	if err != nil {
		return err
	}
	if err := report.WriteCorpus(st, p, *out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}

func handleCatalog(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	data := fs.String("data", "", "Directory of scene files to index (optional)")
	dbPath := fs.String("db", "scenes.db", "Catalog database path")
	summary := fs.Bool("summary", false, "Print corpus summary statistics")
	fs.Parse(args)

	c, err := catalog.Open(*dbPath)
	if err != nil {
		return err
	}
	defer c.Close()

	if *data != "" {
		st, err := scene.NewStore(scene.StoreConfig{Dir: *data})
		if err != nil {
			return err
		}
		if err := c.IndexStore(st); err != nil {
			return err
		}
		fmt.Printf("indexed %d scenes into %s\n", st.Count(), *dbPath)
	}

	if *summary {
		sum, err := c.Summarise()
		if err != nil {
			return err
		}
		fmt.Printf("scenes:      %d\n", sum.SceneCount)
		fmt.Printf("points:      %d\n", sum.TotalPoints)
		fmt.Printf("mean points: %.1f\n", sum.MeanPoints)
		fmt.Printf("std points:  %.1f\n", sum.StdPoints)
		fmt.Printf("min points:  %d\n", sum.MinPoints)
		fmt.Printf("max points:  %d\n", sum.MaxPoints)
	}
	return nil
}

func loadConfig(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.EmptyTuningConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func paletteByName(name string) (*visual.Palette, error) {
	switch name {
	case config.PresetRoomScan:
		return visual.PaletteRoomScan(), nil
	case config.PresetMeshScan:
		return visual.PaletteMeshScan(), nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}
