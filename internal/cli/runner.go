package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cli/browser"
	"github.com/pkg/errors"

	"github.com/idilsaglam/ohmyblood/internal/chart"
	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/entry"
	"github.com/idilsaglam/ohmyblood/internal/history"
	"github.com/idilsaglam/ohmyblood/internal/stats"
	"github.com/idilsaglam/ohmyblood/internal/store"
	"github.com/idilsaglam/ohmyblood/internal/tui"
	"github.com/idilsaglam/ohmyblood/internal/ui"
)

// Options carries everything a subcommand needs.
type Options struct {
	Store    *store.Store
	Clock    clock.Clock
	Location *time.Location
	Logger   *log.Logger
	DataDir  string

	// OpenFile shows an exported chart; defaults to the system browser.
	OpenFile func(path string) error
}

func (o Options) engine() stats.Engine {
	return stats.Engine{Clock: o.Clock, Location: o.Location}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Clock == nil {
		opt.Clock = clock.System{}
	}
	if opt.Location == nil {
		opt.Location = time.Local
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	if opt.OpenFile == nil {
		opt.OpenFile = browser.OpenFile
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ls":
		return doList(opt)
	case "add":
		return doAdd(a, opt)
	case "rm":
		return doRemove(a, opt)
	case "stats":
		return doStats(a, opt)
	case "chart":
		return doChart(a, opt)
	case "ui":
		if err := tui.Run(tui.Options{
			Store:    opt.Store,
			Clock:    opt.Clock,
			Location: opt.Location,
			Logger:   opt.Logger,
			ChartDir: opt.DataDir,
			OpenFile: opt.OpenFile,
		}); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`ohmyblood - a tiny blood-pressure diary

Usage:
  ohmyblood [-store sqlite|json] [-data dir] [-theme classic|neon|mono] [-debug] <subcommand> [args]

Subcommands:
  add [-hand left|right] [-at "dd.MM.yyyy HH:mm"] [-note text] <sys> <dia> <hr>
                     Record a reading (defaults: left hand, now)
  ls                 List readings, newest first
  rm <index...>      Remove readings at 1-based indexes (as shown by ls)
  stats [-period week|month|3months|all] [-hour all|morning|afternoon]
                     Min / max / average for the selection
  chart [-period ..] [-hour ..] [-out file.html] [-open]
                     Export the selection as an HTML line chart
  ui                 Interactive terminal UI

Examples:
  ohmyblood add 128 84 66
  ohmyblood add -hand right -at "03.01.2024 08:15" -note "after run" 142 90 80
  ohmyblood ls
  ohmyblood stats -period month -hour morning
  ohmyblood rm 2
`)
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	rs, err := history.Load(opt.Store)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	th := ui.Current()

	counts := map[string]int{}
	for _, r := range rs {
		counts[r.Class().String()]++
	}
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Oh My Blood!"),
		ui.C(th.Success, "Good"), counts["Good"],
		ui.C(th.Warn, "High"), counts["High"],
		ui.C(th.Error, "Very High"), counts["Very High"],
		ui.C(th.Accent, "Total"), len(rs),
	)

	lines := []string{header, ""}
	if len(rs) == 0 {
		lines = append(lines, ui.C(th.Muted, "no readings"))
	}
	for i, row := range history.Rows(rs, opt.Location) {
		idx := fmt.Sprintf("%2d.", i+1)
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			ui.C(th.Muted, idx),
			ui.C(th.Muted, row.When),
			ui.C(th.Title, row.Values),
			ui.C(th.ClassColor(row.Class), row.Class.String()),
		))
		detail := "    " + row.Hand
		if row.Note != "" {
			detail += "  " + row.Note
		}
		lines = append(lines, ui.C(th.Muted, detail))
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `ohmyblood add 120 80 65`"))
	ui.Panel(lines)
	return 0
}

func doAdd(args []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	hand := fs.String("hand", "left", "hand used: left|right")
	at := fs.String("at", "", `measurement time "dd.MM.yyyy HH:mm" (default now)`)
	note := fs.String("note", "", "free-text note")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 3 {
		ui.Fail("usage: ohmyblood add [-hand left|right] [-at time] [-note text] <sys> <dia> <hr>")
		return 2
	}

	f := entry.New(opt.Clock.Now())
	f.Systolic = entry.DigitsOnly(fs.Arg(0))
	f.Diastolic = entry.DigitsOnly(fs.Arg(1))
	f.HeartRate = entry.DigitsOnly(fs.Arg(2))
	f.Note = *note
	switch strings.ToLower(*hand) {
	case "left", "l":
		f.LeftHand = true
	case "right", "r":
		f.LeftHand = false
	default:
		ui.Fail("add: hand must be left or right, got " + *hand)
		return 2
	}
	if *at != "" {
		ts, err := entry.ParseDate(*at, opt.Location)
		if err != nil {
			ui.Fail("add: " + err.Error())
			ui.Hint(`Hint: dates look like "31.12.2024 07:45"`)
			return 2
		}
		f.Timestamp = ts
	}

	r, err := entry.Submit(opt.Store, f, opt.Clock)
	if err != nil {
		var se *store.Error
		if errors.As(err, &se) {
			opt.Logger.Error("save reading", "err", err)
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.Fail("add: " + err.Error())
		return 2
	}
	opt.Logger.Debug("saved reading", "id", r.ID)
	ui.OK(fmt.Sprintf("added %d/%d ♥%d (%s)", r.Systolic, r.Diastolic, r.HeartRate, r.Class()))
	return 0
}

func doRemove(args []string, opt Options) int {
	if len(args) == 0 {
		ui.Fail("usage: ohmyblood rm <index...>")
		return 2
	}
	positions := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			ui.Fail("rm: not a number: " + a)
			return 2
		}
		positions = append(positions, n-1)
	}

	shown, err := history.Load(opt.Store)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	if err := history.Delete(opt.Store, shown, positions, opt.Logger); err != nil {
		var pe *history.PositionError
		if errors.As(err, &pe) {
			ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", pe.Len, pe.Position+1))
			ui.Hint("Hint: run `ohmyblood ls` to see valid indexes")
			return 2
		}
		ui.Fail("remove: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("removed %d", len(positions)))
	return 0
}

func doStats(args []string, opt Options) int {
	q, _, code := parseQuery("stats", args, false)
	if code != 0 {
		return code
	}
	res, err := compute(opt, q)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	ui.Panel(statsLines(res))
	return 0
}

func doChart(args []string, opt Options) int {
	q, extra, code := parseQuery("chart", args, true)
	if code != 0 {
		return code
	}
	res, err := compute(opt, q)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	out := extra.out
	if out == "" {
		out = filepath.Join(opt.DataDir, "chart.html")
	}
	if err := chart.WriteFile(out, res); err != nil {
		ui.Fail("chart: " + err.Error())
		return 1
	}
	ui.OK("chart written to " + out)
	if extra.open {
		if err := opt.OpenFile(out); err != nil {
			opt.Logger.Warn("open chart", "path", out, "err", err)
		}
	}
	return 0
}

// -------------- helpers --------------

type chartFlags struct {
	out  string
	open bool
}

func parseQuery(name string, args []string, withChart bool) (stats.Query, chartFlags, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	period := fs.String("period", "week", "week|month|3months|all")
	hour := fs.String("hour", "all", "all|morning|afternoon")
	var cf chartFlags
	if withChart {
		fs.StringVar(&cf.out, "out", "", "output HTML file (default <data>/chart.html)")
		fs.BoolVar(&cf.open, "open", false, "open the chart in a browser")
	}
	if err := fs.Parse(args); err != nil {
		return stats.Query{}, cf, 2
	}
	p, err := stats.ParsePeriod(*period)
	if err != nil {
		ui.Fail(name + ": " + err.Error())
		return stats.Query{}, cf, 2
	}
	h, err := stats.ParseHourBucket(*hour)
	if err != nil {
		ui.Fail(name + ": " + err.Error())
		return stats.Query{}, cf, 2
	}
	return stats.Query{Period: p, Hour: h}, cf, 0
}

func compute(opt Options, q stats.Query) (stats.Result, error) {
	rs, err := opt.Store.QueryAll(store.Ascending)
	if err != nil {
		return stats.Result{}, err
	}
	return opt.engine().Run(rs, q), nil
}

func statsLines(res stats.Result) []string {
	th := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s · %s  %s %d",
			ui.C(th.Title, "Statistics"),
			ui.C(th.Accent, res.Query.Period.String()),
			ui.C(th.Accent, res.Query.Hour.String()),
			ui.C(th.Muted, "readings"), len(res.Readings)),
		"",
	}
	lines = append(lines, channelLines("Systolic ", th.Sys, res.Systolic)...)
	lines = append(lines, channelLines("Diastolic", th.Dia, res.Diastolic)...)
	if len(res.Readings) == 0 {
		lines = append(lines, "", ui.C(th.Muted, "no readings in this selection"))
	}
	return lines
}

func channelLines(name, color string, c stats.Channel) []string {
	return []string{
		fmt.Sprintf("%s  min %s  max %s  avg %s",
			ui.C(color, name), ui.FormatInt(c.Min), ui.FormatInt(c.Max), ui.FormatAvg(c.Average)),
		"           " + ui.C(color, ui.Bar(avgOrZero(c.Average), 200, 30)),
	}
}

func avgOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
