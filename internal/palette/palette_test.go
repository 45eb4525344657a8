package palette

import (
	"testing"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteLengths(t *testing.T) {
	assert.Equal(t, 30, Triangle.Len())
	assert.Equal(t, 7, Compact.Len())
	assert.Equal(t, 36, Warm.Len())
	assert.Equal(t, 36, Cool.Len())
}

func TestAtWraps(t *testing.T) {
	assert.Equal(t, voxel.Color{G: 30}, Compact.At(0))
	assert.Equal(t, Compact.At(0), Compact.At(7))
	assert.Equal(t, Compact.At(6), Compact.At(-1))
	assert.Equal(t, voxel.Color{R: 17, G: 2, B: 5}, Cool.At(36))
	assert.Equal(t, voxel.Black, Palette{}.At(3))
}

func TestChannelsFitSixBits(t *testing.T) {
	for _, p := range all {
		for i := 0; i < p.Len(); i++ {
			c := p.At(i)
			assert.Less(t, c.R, uint8(64), "%s[%d]", p.Name(), i)
			assert.Less(t, c.G, uint8(64), "%s[%d]", p.Name(), i)
			assert.Less(t, c.B, uint8(64), "%s[%d]", p.Name(), i)
		}
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("WARM")
	require.NoError(t, err)
	assert.Equal(t, "warm", p.Name())

	_, err = Lookup("plaid")
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{"triangle", "compact", "warm", "cool"}, Names())
}
