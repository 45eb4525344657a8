package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-cube4/internal/app"
	"github.com/coreman2200/funtimes-cube4/internal/clock"
	"github.com/coreman2200/funtimes-cube4/internal/config"
	"github.com/coreman2200/funtimes-cube4/internal/led"
)

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		driver     = flag.String("driver", "sim", "driver: spi | screen | term | sim")
		spiPort    = flag.String("spi", "", "SPI port name (empty picks the first)")
		speedHz    = flag.Int("speed-hz", 0, "SPI clock in Hz (0 uses the strip default)")
		brightness = flag.Float64("brightness", 0.8, "global brightness 0..1")
		depth      = flag.Uint("depth", 6, "significant bits per color channel")
		seed       = flag.Uint64("seed", 0, "random seed (0 picks one)")
		addr       = flag.String("addr", "", "preview listen address, e.g. :8080 (empty disables)")
		recordPath = flag.String("record", "", "write committed frames to this .c4rec file")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Effective config: flags first, config.yaml on top ----
	cfg := config.Default()
	cfg.Driver = *driver
	cfg.SPI.Port = *spiPort
	if *speedHz > 0 {
		cfg.SPI.SpeedHz = *speedHz
	}
	cfg.Brightness = *brightness
	cfg.Depth = *depth
	cfg.Seed = *seed
	cfg.Preview.Addr = *addr
	cfg.Record = *recordPath

	if err := config.LoadOver(*configPath, cfg); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	}
	if *simOnly {
		cfg.Driver = "sim"
	}

	// ---- Driver ----
	drv, selected := app.OpenDriver(cfg.Driver, cfg)
	if selected == "term" {
		// tcell owns the terminal now
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	core, err := app.InitCore(cfg, drv, selected, clock.Sleep{})
	if err != nil {
		_ = drv.Close()
		log.Fatal().Err(err).Msg("init")
	}
	log.Info().
		Str("driver", selected).
		Uint64("seed", core.Seed).
		Str("preview", cfg.Preview.Addr).
		Str("record", cfg.Record).
		Msg("cube starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the terminal view owns the keyboard, so it gets its own quit path
	if t, ok := drv.(*led.Term); ok {
		go t.Listen(stop)
	}

	core.Start(ctx, cfg.Preview.Addr)
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case <-core.Done():
		if err := core.Err(); err != nil {
			log.Error().Err(err).Msg("rotation stopped")
		}
	}

	// a clip can hold the cube for a while; blank it regardless
	if err := core.Stop(2 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
