// Package report renders an HTML overview of a loaded scene corpus using
// go-echarts: per-scene point counts plus a class histogram.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/roomscan-data/pointprep/internal/scene"
	"github.com/roomscan-data/pointprep/internal/visual"
)

// WriteCorpus writes an HTML report for every scene held by the store.
// The palette supplies class names for the label histogram.
func WriteCorpus(st *scene.Store, palette *visual.Palette, path string) error {
	if st.Count() == 0 {
		return fmt.Errorf("corpus report: store holds no scenes")
	}

	page := components.NewPage()
	page.AddCharts(pointCountChart(st), classHistogramChart(st, palette))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render corpus report: %w", err)
	}
	return nil
}

func pointCountChart(st *scene.Store) *charts.Bar {
	names := make([]string, 0, st.Count())
	counts := make([]opts.BarData, 0, st.Count())
	total := 0
	for i := 0; i < st.Count(); i++ {
		sc := st.At(i)
		names = append(names, sc.Name)
		counts = append(counts, opts.BarData{Value: sc.NumPoints()})
		total += sc.NumPoints()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Points per Scene",
			Subtitle: fmt.Sprintf("scenes=%d total_points=%d", st.Count(), total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("points", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func classHistogramChart(st *scene.Store, palette *visual.Palette) *charts.Bar {
	hist := make(map[int32]int)
	for i := 0; i < st.Count(); i++ {
		for _, l := range st.At(i).Labels {
			hist[l]++
		}
	}

	labels := make([]int32, 0, len(hist))
	for l := range hist {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(a, b int) bool { return labels[a] < labels[b] })

	names := make([]string, 0, len(labels))
	counts := make([]opts.BarData, 0, len(labels))
	for _, l := range labels {
		names = append(names, palette.Name(l))
		counts = append(counts, opts.BarData{Value: hist[l]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Points per Class",
			Subtitle: fmt.Sprintf("classes=%d", len(labels)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("points", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
