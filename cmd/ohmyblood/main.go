package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/ohmyblood/internal/cli"
	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/config"
	"github.com/idilsaglam/ohmyblood/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	storeKind := flag.String("store", "", "storage backend: sqlite|json (env OHMYBLOOD_STORE)")
	dataDir := flag.String("data", "", "data directory (env OHMYBLOOD_DATA_DIR, default ~/.ohmyblood)")
	theme := flag.String("theme", "", "color theme: classic|neon|mono (env OHMYBLOOD_THEME)")
	debug := flag.Bool("debug", false, "debug logging")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}
	switch args[0] {
	case "help", "-h", "--help":
		cli.PrintHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(config.Overrides{
		DataDir: *dataDir,
		Store:   *storeKind,
		Theme:   *theme,
		Debug:   *debug,
	})
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ohmyblood",
		Level:  cfg.LogLevel,
	})
	ui.SetColorForcing(false, *noColor)
	ui.SetTheme(cfg.Theme)

	st, err := cli.OpenStore(cfg)
	if err != nil {
		logger.Error("open store", "dir", cfg.DataDir, "store", cfg.Store, "err", err)
		ui.Fail(err.Error())
		os.Exit(1)
	}
	logger.Debug("store ready", "dir", cfg.DataDir, "store", cfg.Store)

	code := cli.Run(args, cli.Options{
		Store:    st,
		Clock:    clock.System{},
		Location: cfg.Location,
		Logger:   logger,
		DataDir:  cfg.DataDir,
	})
	if err := st.Close(); err != nil {
		logger.Warn("close store", "err", err)
	}
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
