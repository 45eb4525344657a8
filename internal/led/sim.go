package led

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Sim accepts frames without hardware and logs a compact summary, useful
// for headless runs.
type Sim struct {
	mu    sync.Mutex
	count int
	last  []byte
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	s.last = append(s.last[:0], rgb...)

	if e := log.Trace(); e.Enabled() {
		var r, g, b, lit int
		for i := 0; i+2 < len(rgb); i += 3 {
			r += int(rgb[i])
			g += int(rgb[i+1])
			b += int(rgb[i+2])
			if rgb[i]|rgb[i+1]|rgb[i+2] != 0 {
				lit++
			}
		}
		e.Int("frame", s.count).Int("lit", lit).Ints("sum", []int{r, g, b}).Msg("sim frame")
	}
	return nil
}

func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Last returns a copy of the most recent frame.
func (s *Sim) Last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.last...)
}

func (s *Sim) Close() error { return nil }
