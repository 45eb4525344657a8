package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-cube4/internal/clock"
	"github.com/coreman2200/funtimes-cube4/internal/config"
	"github.com/coreman2200/funtimes-cube4/internal/effect"
	"github.com/coreman2200/funtimes-cube4/internal/led"
	"github.com/coreman2200/funtimes-cube4/internal/preview"
	"github.com/coreman2200/funtimes-cube4/internal/record"
	"github.com/coreman2200/funtimes-cube4/internal/show"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

// Core is one assembled cube: buffer, sinks and the rotation player.
type Core struct {
	Cube   *voxel.Cube
	Player *show.Player
	Hub    *preview.Hub
	Rec    *record.Writer
	Driver led.Driver
	Seed   uint64

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// InitCore wires drv behind the level mapping, adds the preview hub and the
// recorder when configured, and loads the rotation. clk paces the effects.
// The caller keeps ownership of drv until InitCore succeeds; after that
// Stop closes it.
func InitCore(cfg *config.Config, drv led.Driver, driverName string, clk clock.Clock) (*Core, error) {
	pals, err := cfg.EffectPalettes()
	if err != nil {
		return nil, err
	}

	l := cfg.Layout()
	core := &Core{Driver: drv, Seed: cfg.Seed}
	cube := voxel.NewCube(l, led.NewOutput(drv, cfg.Levels()))
	if cfg.Preview.Addr != "" {
		core.Hub = preview.NewHub(l, driverName)
		cube.Attach(core.Hub)
	}
	if cfg.Record != "" {
		w, err := record.Create(cfg.Record)
		if err != nil {
			return nil, err
		}
		core.Rec = w
		cube.Attach(w)
	}
	// frames carry virtual time when the clock has one
	if v, ok := clk.(interface{ Now() time.Duration }); ok {
		cube.Now = v.Now
	}
	core.Cube = cube

	if core.Seed == 0 {
		core.Seed = rand.Uint64()
	}
	cv := &effect.Canvas{
		Buf:      cube,
		Clock:    clk,
		Rand:     rand.New(rand.NewPCG(core.Seed, core.Seed^0x9e3779b97f4a7c15)),
		Palettes: pals,
	}
	hooks := show.Hooks{
		ClipStart: func(i int, c show.Clip) {
			log.Info().Int("clip", i).Str("effect", c.Effect).Int("iterations", c.Iterations).Msg("playing")
		},
	}
	core.Player = show.NewPlayer(cv, hooks)
	if err := core.Player.Load(cfg.Program()); err != nil {
		if core.Rec != nil {
			core.Rec.Close()
		}
		return nil, fmt.Errorf("rotation: %w", err)
	}
	return core, nil
}

// Start runs the preview server and the player in the background.
func (c *Core) Start(ctx context.Context, previewAddr string) {
	ctx, c.cancel = context.WithCancel(ctx)
	if c.Hub != nil && previewAddr != "" {
		go func() {
			if err := c.Hub.Serve(ctx, previewAddr); err != nil {
				log.Error().Err(err).Str("addr", previewAddr).Msg("preview server")
			}
		}()
	}
	c.done = make(chan struct{})
	go func() {
		c.err = c.Player.Run(ctx)
		close(c.done)
	}()
}

// Done is closed once the rotation stops; Err then holds its result.
func (c *Core) Done() <-chan struct{} { return c.done }

func (c *Core) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Stop cancels the rotation and waits up to timeout for the running clip to
// finish, then blanks the cube and closes every sink.
func (c *Core) Stop(timeout time.Duration) error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.done != nil {
		select {
		case <-c.done:
		case <-time.After(timeout):
			log.Warn().Dur("timeout", timeout).Msg("clip still running; blanking anyway")
		}
	}
	err := c.Cube.Close()
	if cerr := c.closeSinks(); err == nil {
		err = cerr
	}
	return err
}

func (c *Core) closeSinks() error {
	var err error
	if c.Rec != nil {
		err = c.Rec.Close()
	}
	if c.Driver != nil {
		if cerr := c.Driver.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
