package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/stats"
)

// AxisLayout labels the x axis (MM/dd/yyyy HH:mm).
const AxisLayout = "01/02/2006 15:04"

const (
	systolicColor  = "#d62728"
	diastolicColor = "#1f77b4"
)

// Line builds the systolic/diastolic line chart for a statistics result.
func Line(res stats.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Oh My Blood!"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Statistics · %s · %s", res.Query.Period, res.Query.Hour),
			Subtitle: Subtitle(res),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "mmHg",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(axis(res.Readings, res.Location))
	line.AddSeries("Sys Pressure", points(res.Readings, func(r model.Reading) int { return r.Systolic }),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: systolicColor}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: systolicColor}),
	)
	line.AddSeries("Dia Pressure", points(res.Readings, func(r model.Reading) int { return r.Diastolic }),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: diastolicColor}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: diastolicColor}),
	)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
		ShowSymbol: opts.Bool(true),
		Symbol:     "circle",
	}))
	return line
}

// Render writes the chart as a standalone HTML page.
func Render(w io.Writer, res stats.Result) error {
	if err := Line(res).Render(w); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}

// WriteFile renders the chart into path, creating parent directories.
func WriteFile(path string, res stats.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if err := Render(f, res); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close")
}

// Subtitle summarizes the six aggregates in one line.
func Subtitle(res stats.Result) string {
	if len(res.Readings) == 0 {
		return "no readings in this selection"
	}
	return fmt.Sprintf("%d readings · sys %s · dia %s",
		len(res.Readings), channel(res.Systolic), channel(res.Diastolic))
}

func channel(c stats.Channel) string {
	if c.Empty() {
		return "-"
	}
	return fmt.Sprintf("min %d / max %d / avg %.2f", *c.Min, *c.Max, *c.Average)
}

func axis(rs []model.Reading, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Timestamp.In(loc).Format(AxisLayout)
	}
	return out
}

func points(rs []model.Reading, value func(model.Reading) int) []opts.LineData {
	items := make([]opts.LineData, 0, len(rs))
	for _, r := range rs {
		items = append(items, opts.LineData{Value: value(r)})
	}
	return items
}
