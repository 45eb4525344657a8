package led

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	termCellW    = 2 // terminal columns per voxel
	termLayerGap = 3
)

// Term draws the four layers side by side in a terminal, bottom layer on
// the left, +Y up.
type Term struct {
	mu     sync.Mutex
	screen tcell.Screen
	layout voxel.Layout
	closed bool
}

// OpenTerm takes over the controlling terminal.
func OpenTerm(l voxel.Layout) (*Term, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	return NewTerm(s, l), nil
}

// NewTerm wraps an initialised screen.
func NewTerm(s tcell.Screen, l voxel.Layout) *Term {
	s.Clear()
	return &Term{screen: s, layout: l}
}

// TermCell returns the top-left terminal cell of a voxel.
func TermCell(x, y, z int) (col, row int) {
	col = z*(voxel.Size*termCellW+termLayerGap) + x*termCellW
	row = 1 + (voxel.Size - 1 - y)
	return col, row
}

func (t *Term) Write(rgb []byte) error {
	if len(rgb) != voxel.Count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), voxel.Count)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}

	label := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for z := 0; z < voxel.Size; z++ {
		col, _ := TermCell(0, 0, z)
		for i, r := range fmt.Sprintf("z%d", z) {
			t.screen.SetContent(col+i, 0, r, nil, label)
		}
		for y := 0; y < voxel.Size; y++ {
			for x := 0; x < voxel.Size; x++ {
				i := t.layout.Index(x, y, z) * 3
				c := tcell.NewRGBColor(int32(rgb[i]), int32(rgb[i+1]), int32(rgb[i+2]))
				st := tcell.StyleDefault.Background(c)
				cx, cy := TermCell(x, y, z)
				for w := 0; w < termCellW; w++ {
					t.screen.SetContent(cx+w, cy, ' ', nil, st)
				}
			}
		}
	}
	t.screen.Show()
	return nil
}

// Listen polls terminal input and calls quit on Ctrl+C, Esc or 'q'. It
// returns when the screen is finalised.
func (t *Term) Listen(quit func()) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				quit()
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Term) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		t.screen.Fini()
	}
	return nil
}
