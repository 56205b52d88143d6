package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/ohmyblood/internal/chart"
	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/stats"
	"github.com/idilsaglam/ohmyblood/internal/ui"
)

type statsView struct {
	query stats.Query
	res   stats.Result
}

func newStatsView() statsView {
	return statsView{query: stats.Query{Period: stats.LastWeek, Hour: stats.AllHours}}
}

func (s *statsView) refresh(rs []model.Reading, now time.Time, loc *time.Location) {
	s.res = stats.Engine{Clock: clock.Fixed(now), Location: loc}.Run(rs, s.query)
}

func (a *app) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch km.String() {
	case "q", "esc", "s":
		a.screen = listScreen
	case "p":
		a.stats.query.Period = a.stats.query.Period.Next()
		a.stats.refresh(a.shown, a.opt.Clock.Now(), a.opt.Location)
	case "h":
		a.stats.query.Hour = a.stats.query.Hour.Next()
		a.stats.refresh(a.shown, a.opt.Clock.Now(), a.opt.Location)
	case "c":
		a.exportChart()
	}
	return a, nil
}

func (a *app) exportChart() {
	path := filepath.Join(a.opt.ChartDir, "chart.html")
	if err := chart.WriteFile(path, a.stats.res); err != nil {
		a.setStatus("chart: "+err.Error(), true)
		return
	}
	a.setStatus("chart written to "+path, false)
	if a.opt.OpenFile != nil {
		if err := a.opt.OpenFile(path); err != nil {
			a.opt.Logger.Warn("open chart", "path", path, "err", err)
		}
	}
}

const sparkTicks = "▁▂▃▄▅▆▇█"

// sparkline squeezes values into one row of block characters.
func sparkline(values []int, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	ticks := []rune(sparkTicks)
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = (v - lo) * (len(ticks) - 1) / (hi - lo)
		}
		b.WriteRune(ticks[i])
	}
	return b.String()
}

func (s statsView) view(width int) string {
	periods := make([]string, len(stats.Periods))
	for i, p := range stats.Periods {
		periods[i] = p.String()
	}
	hours := make([]string, len(stats.HourBuckets))
	for i, h := range stats.HourBuckets {
		hours[i] = h.String()
	}

	var sys, dia []int
	for _, r := range s.res.Readings {
		sys = append(sys, r.Systolic)
		dia = append(dia, r.Diastolic)
	}
	plotWidth := width - 16

	grid := lipgloss.JoinHorizontal(lipgloss.Top,
		statColumn("Systolic", sysStyle, s.res.Systolic),
		"    ",
		statColumn("Diastolic", diaStyle, s.res.Diastolic),
	)

	lines := []string{
		titleStyle.Render("Statistics"),
		"",
		tabs(periods, int(s.query.Period)),
		tabs(hours, int(s.query.Hour)),
		"",
	}
	if len(s.res.Readings) == 0 {
		lines = append(lines, mutedStyle.Render("no readings in this selection"))
	} else {
		lines = append(lines,
			sysStyle.Render("sys ")+sparkline(sys, plotWidth),
			diaStyle.Render("dia ")+sparkline(dia, plotWidth),
			mutedStyle.Render(fmt.Sprintf("%d readings", len(s.res.Readings))),
		)
	}
	lines = append(lines,
		"",
		titleStyle.Render("Blood Pressure Information"),
		grid,
		"",
		helpStyle.Render("p period · h hour · c export chart · esc back"),
	)
	return strings.Join(lines, "\n")
}

func statColumn(name string, st lipgloss.Style, c stats.Channel) string {
	return strings.Join([]string{
		st.Render(name+" (Min)") + "  " + ui.FormatInt(c.Min),
		st.Render(name+" (Max)") + "  " + ui.FormatInt(c.Max),
		st.Render(name+" (Average)") + "  " + ui.FormatAvg(c.Average),
	}, "\n")
}
