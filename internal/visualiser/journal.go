package visualiser

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/targeting/internal/db"
)

// Journal is everything recorded for one run.
type Journal struct {
	Run       db.Run
	Contacts  []db.ContactSample
	Solutions []db.SolutionSample
}

// LoadJournal reads a run and its samples from the store.
func LoadJournal(store *db.DB, runID string) (Journal, error) {
	run, err := store.GetRun(runID)
	if err != nil {
		return Journal{}, err
	}
	samples, err := store.ContactSamples(runID)
	if err != nil {
		return Journal{}, fmt.Errorf("load contacts: %w", err)
	}
	solutions, err := store.SolutionSamples(runID)
	if err != nil {
		return Journal{}, fmt.Errorf("load solutions: %w", err)
	}
	return Journal{Run: run, Contacts: samples, Solutions: solutions}, nil
}

// RenderJournal writes an HTML page with contact tracks, predicted impacts
// and the per-tick contact count.
func RenderJournal(w io.Writer, j Journal) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Run %s", j.Run.Scenario)
	page.AddCharts(trackChart(j), countChart(j))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render journal: %w", err)
	}
	return nil
}

func trackChart(j Journal) *charts.Scatter {
	byID := make(map[int][]opts.ScatterData)
	for _, s := range j.Contacts {
		byID[s.ContactID] = append(byID[s.ContactID], opts.ScatterData{
			Value: []interface{}{s.X, s.Y, s.Time},
			Name:  s.Class,
		})
	}
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Contact tracks", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Contact tracks", Subtitle: fmt.Sprintf("run=%s samples=%d", j.Run.ID, len(j.Contacts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	colors := generateColors(len(ids))
	for i, id := range ids {
		scatter.AddSeries(fmt.Sprintf("contact %d", id), byID[id],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}

	if len(j.Solutions) > 0 {
		impacts := make([]opts.ScatterData, 0, len(j.Solutions))
		for _, s := range j.Solutions {
			impacts = append(impacts, opts.ScatterData{
				Value: []interface{}{s.ImpactX, s.ImpactY, s.ImpactTime},
				Name:  fmt.Sprintf("%s %d", s.Kind, s.ContactID),
			})
		}
		scatter.AddSeries("impacts", impacts,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ffffff"}),
		)
	}
	return scatter
}

func countChart(j Journal) *charts.Line {
	type counts struct{ search, tracked int }
	byTick := make(map[int]*counts)
	for _, s := range j.Contacts {
		c := byTick[s.Tick]
		if c == nil {
			c = &counts{}
			byTick[s.Tick] = c
		}
		if s.Tracked {
			c.tracked++
		} else {
			c.search++
		}
	}
	ticks := make([]int, 0, len(byTick))
	for t := range byTick {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)

	x := make([]string, len(ticks))
	search := make([]opts.LineData, len(ticks))
	tracked := make([]opts.LineData, len(ticks))
	for i, t := range ticks {
		x[i] = strconv.Itoa(t)
		search[i] = opts.LineData{Value: byTick[t].search}
		tracked[i] = opts.LineData{Value: byTick[t].tracked}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Contacts per tick"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tick"}),
	)
	line.SetXAxis(x).
		AddSeries("search", search).
		AddSeries("tracked", tracked)
	return line
}
