package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-cube4/internal/effect"
	"github.com/coreman2200/funtimes-cube4/internal/led"
	"github.com/coreman2200/funtimes-cube4/internal/palette"
	"github.com/coreman2200/funtimes-cube4/internal/show"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

type PowerCfg struct {
	WhiteCap float64 `yaml:"white_cap"`
}

type SPI struct {
	Port    string `yaml:"port"`     // periph port name, e.g. /dev/spidev0.0 or "" for the first
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

// Palettes names the table each effect draws from; empty keeps the default.
type Palettes struct {
	Rain   string `yaml:"rain,omitempty"`
	Planes string `yaml:"planes,omitempty"`
	Spiral string `yaml:"spiral,omitempty"`
}

type Preview struct {
	Addr string `yaml:"addr"` // empty disables the websocket preview
}

type Config struct {
	Driver     string  `yaml:"driver"` // "spi" | "screen" | "term" | "sim"
	Brightness float64 `yaml:"brightness"`
	Depth      uint    `yaml:"depth"` // significant bits per channel
	Seed       uint64  `yaml:"seed"`  // 0 picks a random seed

	XFlipEveryRow   bool `yaml:"x_flip_every_row"`
	YFlipEveryLayer bool `yaml:"y_flip_every_layer"`

	Power    PowerCfg      `yaml:"power"`
	SPI      SPI           `yaml:"spi,omitempty"`
	Rotation *show.Program `yaml:"rotation,omitempty"`
	Palettes Palettes      `yaml:"palettes,omitempty"`
	Preview  Preview       `yaml:"preview,omitempty"`
	Record   string        `yaml:"record,omitempty"` // .c4rec output path
}

// Default is the stock cube: sim output, default levels and rotation.
func Default() *Config {
	lv := led.DefaultLevels()
	prog := show.DefaultProgram()
	return &Config{
		Driver:        "sim",
		Brightness:    lv.Brightness,
		Depth:         lv.Depth,
		XFlipEveryRow: true,
		Power:         PowerCfg{WhiteCap: lv.WhiteCap},
		SPI:           SPI{SpeedHz: int(led.DefaultStripHz / physic.Hertz)},
		Rotation:      &prog,
	}
}

func Load(path string) (*Config, error) {
	var c Config
	if err := LoadOver(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadOver reads path on top of c. Keys missing from the file keep c's
// values, so flags can be folded in first.
func LoadOver(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// StripFreq returns the SPI clock, or zero to let the driver pick.
func (c *Config) StripFreq() physic.Frequency {
	return physic.Frequency(c.SPI.SpeedHz) * physic.Hertz
}

func (c *Config) Layout() voxel.Layout {
	return voxel.Layout{Order: voxel.Serpentine{XFlipEveryRow: c.XFlipEveryRow, YFlipEveryLayer: c.YFlipEveryLayer}}
}

// Levels fills unset fields from led.DefaultLevels.
func (c *Config) Levels() led.Levels {
	lv := led.DefaultLevels()
	if c.Depth > 0 {
		lv.Depth = c.Depth
	}
	if c.Brightness > 0 {
		lv.Brightness = c.Brightness
	}
	if c.Power.WhiteCap > 0 {
		lv.WhiteCap = c.Power.WhiteCap
	}
	return lv
}

// Program returns the configured rotation or the default one.
func (c *Config) Program() show.Program {
	if c.Rotation == nil || len(c.Rotation.Clips) == 0 {
		return show.DefaultProgram()
	}
	return *c.Rotation
}

func (c *Config) EffectPalettes() (effect.Palettes, error) {
	var out effect.Palettes
	for _, p := range []struct {
		name string
		dst  *palette.Palette
	}{
		{c.Palettes.Rain, &out.Rain},
		{c.Palettes.Planes, &out.Planes},
		{c.Palettes.Spiral, &out.Spiral},
	} {
		if p.name == "" {
			continue
		}
		pal, err := palette.Lookup(p.name)
		if err != nil {
			return effect.Palettes{}, err
		}
		*p.dst = pal
	}
	return out, nil
}
