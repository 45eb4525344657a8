// cubesnap captures, inspects and exports .c4rec recordings without a cube.
//
//	cubesnap capture -effect spiral -n 1 -o spiral.c4rec
//	cubesnap stats spiral.c4rec
//	cubesnap glb -frame 400 -o frame.glb spiral.c4rec
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-cube4/internal/app"
	"github.com/coreman2200/funtimes-cube4/internal/clock"
	"github.com/coreman2200/funtimes-cube4/internal/config"
	"github.com/coreman2200/funtimes-cube4/internal/led"
	"github.com/coreman2200/funtimes-cube4/internal/record"
	"github.com/coreman2200/funtimes-cube4/internal/show"
	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "capture":
		err = capture(os.Args[2:])
	case "stats":
		err = stats(os.Args[2:])
	case "glb":
		err = glb(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", os.Args[1]).Msg("cubesnap")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cubesnap capture|stats|glb [flags]")
	os.Exit(2)
}

// capture plays effects on a virtual clock straight into a recording.
func capture(args []string) error {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	var (
		effect = fs.String("effect", "rain", "effect to capture")
		n      = fs.Int("n", 1, "iterations")
		seed   = fs.Uint64("seed", 1, "random seed")
		out    = fs.String("o", "capture.c4rec", "output recording")
		cfgP   = fs.String("config", "", "optional config.yaml for palettes and layout")
	)
	fs.Parse(args)

	cfg := config.Default()
	if *cfgP != "" {
		if err := config.LoadOver(*cfgP, cfg); err != nil {
			return err
		}
	}
	cfg.Seed = *seed
	cfg.Record = *out
	cfg.Preview.Addr = ""
	cfg.Rotation = &show.Program{Clips: []show.Clip{{Effect: *effect, Iterations: *n}}}

	clk := &clock.Virtual{}
	core, err := app.InitCore(cfg, led.NewSim(), "sim", clk)
	if err != nil {
		return err
	}
	core.Start(context.Background(), "")
	<-core.Done()
	if err := core.Err(); err != nil {
		return err
	}
	if err := core.Stop(time.Second); err != nil {
		return err
	}
	// the count includes the blanking frame Stop appends
	log.Info().
		Str("effect", *effect).
		Int("frames", core.Rec.Frames()).
		Dur("virtual", clk.Now()).
		Str("out", *out).
		Msg("captured")
	return nil
}

func stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("stats wants one recording")
	}
	r, err := record.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	var (
		count    int
		last     *voxel.Frame
		maxLit   int
		distinct = map[uint64]bool{}
	)
	for {
		f, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		count++
		last = f
		distinct[record.Fingerprint(f)] = true
		lit := 0
		for _, c := range f.Voxels {
			if !c.IsBlack() {
				lit++
			}
		}
		maxLit = max(maxLit, lit)
	}
	if last == nil {
		fmt.Println("empty recording")
		return nil
	}
	fmt.Printf("frames:   %d (last seq %d)\n", count, last.Seq)
	fmt.Printf("duration: %s\n", last.Elapsed)
	fmt.Printf("distinct: %d\n", len(distinct))
	fmt.Printf("max lit:  %d/%d\n", maxLit, voxel.Count)
	return nil
}

func glb(args []string) error {
	fs := flag.NewFlagSet("glb", flag.ExitOnError)
	var (
		frame = fs.Int("frame", 1, "1-based frame number to export")
		depth = fs.Uint("depth", 6, "significant bits per channel")
		out   = fs.String("o", "frame.glb", "output .glb")
	)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("glb wants one recording")
	}
	if *frame < 1 {
		return fmt.Errorf("frame numbers start at 1")
	}
	r, err := record.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	var f *voxel.Frame
	for i := 0; i < *frame; i++ {
		if f, err = r.Next(); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}

	w, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := record.ExportGLB(w, f, *depth); err != nil {
		w.Close()
		return err
	}
	log.Info().Uint64("seq", f.Seq).Str("out", *out).Msg("exported")
	return w.Close()
}
