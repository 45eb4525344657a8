package app

import (
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-cube4/internal/config"
	"github.com/coreman2200/funtimes-cube4/internal/led"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// OpenDriver resolves a driver name to hardware, falling back to the
// simulator when the hardware cannot be opened. It returns the name of the
// driver actually in use.
func OpenDriver(name string, cfg *config.Config) (led.Driver, string) {
	switch name {
	case "sim":
		return led.NewSim(), "sim"

	case "spi":
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; falling back to SIM")
			return led.NewSim(), "sim"
		}
		drv, err := led.OpenStrip(cfg.SPI.Port, voxel.Count, cfg.StripFreq())
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("port", cfg.SPI.Port).
				Int("speed_hz", cfg.SPI.SpeedHz).
				Msg("SPI init failed; falling back to SIM")
			return led.NewSim(), "sim"
		}
		log.Info().Str("strip", drv.String()).Msg("strip ready")
		return drv, "spi"

	case "screen":
		return led.NewScreen(voxel.Count), "screen"

	case "term":
		t, err := led.OpenTerm(cfg.Layout())
		if err != nil {
			log.Warn().Err(err).Msg("terminal unavailable; using SIM")
			return led.NewSim(), "sim"
		}
		return t, "term"

	default:
		log.Warn().Str("driver", name).Msg("unknown driver; using SIM")
		return led.NewSim(), "sim"
	}
}
