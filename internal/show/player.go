// Package show runs the effect rotation.
package show

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-cube4/internal/effect"
)

// Player owns the Program and drives the effects on a Canvas.
type Player struct {
	mu    sync.Mutex
	state PlayerState
	prog  Program
	funcs []effect.Func
	done  int

	canvas *effect.Canvas
	hooks  Hooks
}

func NewPlayer(cv *effect.Canvas, h Hooks) *Player {
	return &Player{state: Idle, canvas: cv, hooks: h}
}

// Load validates and installs prog. It fails while the player is running.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return errors.New("program has no clips")
	}
	funcs := make([]effect.Func, len(prog.Clips))
	for i, c := range prog.Clips {
		f, ok := effect.Lookup(c.Effect)
		if !ok {
			return fmt.Errorf("clip %d: unknown effect %q", i, c.Effect)
		}
		if c.Iterations <= 0 {
			return fmt.Errorf("clip %d (%s): iterations must be positive, got %d", i, c.Effect, c.Iterations)
		}
		funcs[i] = f
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Running {
		return errors.New("player is running")
	}
	p.prog = prog
	p.funcs = funcs
	p.done = 0
	return nil
}

func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Completed returns the number of clips played to the end.
func (p *Player) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Run plays the program until it ends or ctx is cancelled. Cancellation is
// only observed between clips; a started effect always runs to completion.
func (p *Player) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.funcs == nil {
		p.mu.Unlock()
		return errors.New("no program loaded")
	}
	if p.state == Running {
		p.mu.Unlock()
		return errors.New("player is already running")
	}
	p.state = Running
	prog, funcs := p.prog, p.funcs
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = Idle
		p.mu.Unlock()
	}()

	for {
		for i, c := range prog.Clips {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.play(i, c, funcs[i])
		}
		if !prog.Loop {
			return nil
		}
	}
}

func (p *Player) play(i int, c Clip, f effect.Func) {
	if p.hooks.ClipStart != nil {
		p.hooks.ClipStart(i, c)
	}
	start := time.Now()
	log.Debug().Int("clip", i).Str("effect", c.Effect).Int("iterations", c.Iterations).Msg("clip start")

	f(p.canvas, c.Iterations)

	log.Debug().Int("clip", i).Str("effect", c.Effect).Dur("took", time.Since(start)).Msg("clip done")
	p.mu.Lock()
	p.done++
	p.mu.Unlock()
	if p.hooks.ClipDone != nil {
		p.hooks.ClipDone(i, c)
	}
}
