package led

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

const DefaultStripHz = 2500 * physic.KiloHertz

// Drawer pushes frames through any periph display.Drawer, one pixel per LED.
type Drawer struct {
	drawer display.Drawer
	port   io.Closer
	img    *image.NRGBA
	count  int
	// trailer is written after each frame; the console screen needs a newline.
	trailer io.Writer
}

func newDrawer(d display.Drawer, port io.Closer, count int) *Drawer {
	return &Drawer{
		drawer: d,
		port:   port,
		count:  count,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
	}
}

// NewStrip drives a WS2812-style strip over an already opened SPI port.
func NewStrip(port spi.Port, count int, freq physic.Frequency) (*Drawer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq <= 0 {
		freq = DefaultStripHz
	}
	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	}
	d, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	var closer io.Closer
	if pc, ok := port.(spi.PortCloser); ok {
		closer = pc
	}
	return newDrawer(d, closer, count), nil
}

// OpenStrip opens the named SPI port ("" picks the first one registered)
// and attaches a strip to it. periph's host drivers must be initialised.
func OpenStrip(name string, count int, freq physic.Frequency) (*Drawer, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", name, err)
	}
	d, err := NewStrip(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return d, nil
}

// NewScreen renders the strip as colored blocks on the console.
func NewScreen(count int) *Drawer {
	d := newDrawer(screen.New(count), nil, count)
	d.trailer = os.Stdout
	return d
}

func (d *Drawer) String() string {
	return d.drawer.String()
}

func (d *Drawer) Write(rgb []byte) error {
	if len(rgb) != d.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), d.count)
	}
	for i := 0; i < d.count; i++ {
		d.img.SetNRGBA(i, 0, color.NRGBA{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2], A: 255})
	}
	if err := d.drawer.Draw(d.drawer.Bounds(), d.img, image.Point{}); err != nil {
		return err
	}
	if d.trailer != nil {
		fmt.Fprint(d.trailer, "\n")
	}
	return nil
}

func (d *Drawer) Close() error {
	err := d.drawer.Halt()
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
		d.port = nil
	}
	return err
}
