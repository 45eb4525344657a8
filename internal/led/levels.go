package led

import "math"

// Levels scales cube channel values (Depth significant bits) to 8-bit
// driver levels.
type Levels struct {
	Depth      uint    // significant bits per channel, 1..8
	Brightness float64 // global scale 0..1
	WhiteCap   float64 // per-LED cap on r+g+b as a fraction of full white; 0 or >=1 disables
}

func DefaultLevels() Levels {
	return Levels{Depth: 6, Brightness: 0.8, WhiteCap: 0.85}
}

func (l Levels) full() float64 {
	d := l.Depth
	if d == 0 || d > 8 {
		d = 8
	}
	return float64(uint(1)<<d - 1)
}

// Apply writes the scaled copy of rgb into dst, reallocating when short.
func (l Levels) Apply(rgb []byte, dst []byte) []byte {
	if cap(dst) < len(rgb) {
		dst = make([]byte, len(rgb))
	}
	dst = dst[:len(rgb)]

	scale := 255.0 / l.full() * clamp(l.Brightness, 0, 1)
	for i, v := range rgb {
		dst[i] = byte(math.Round(clamp(float64(v)*scale, 0, 255)))
	}
	applyWhiteCap(dst, l.WhiteCap)
	return dst
}

// applyWhiteCap clamps per-LED RGB so r+g+b <= whiteCap*3*255
func applyWhiteCap(rgb []byte, whiteCap float64) {
	if whiteCap <= 0 || whiteCap >= 1 {
		return
	}
	limit := whiteCap * 3.0 * 255.0
	for i := 0; i+2 < len(rgb); i += 3 {
		s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
		if s > limit && s > 0 {
			scale := limit / s
			rgb[i] = byte(math.Round(float64(rgb[i]) * scale))
			rgb[i+1] = byte(math.Round(float64(rgb[i+1]) * scale))
			rgb[i+2] = byte(math.Round(float64(rgb[i+2]) * scale))
		}
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
