package xdelta

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_HoleSetInit(t *testing.T) {
	hs := NewHoleSet(1000)
	assert.False(t, hs.Empty())
	assert.EqualValues(t, 1000, hs.Size())
	assert.Equal(t, []Hole{{Offset: 0, Length: 1000}}, hs.Holes())

	assert.True(t, NewHoleSet(0).Empty())
}

func Test_SplitMiddle(t *testing.T) {
	hs := NewHoleSet(1000)
	assert.NoError(t, hs.Split(Hole{Offset: 400, Length: 200}))
	assert.Equal(t, []Hole{
		{Offset: 0, Length: 400},
		{Offset: 600, Length: 400},
	}, hs.Holes())
	assert.EqualValues(t, 800, hs.Size())
}

func Test_SplitEdges(t *testing.T) {
	hs := NewHoleSet(1000)

	// left edge: no left remainder
	assert.NoError(t, hs.Split(Hole{Offset: 0, Length: 100}))
	assert.Equal(t, []Hole{{Offset: 100, Length: 900}}, hs.Holes())

	// right edge: no right remainder
	assert.NoError(t, hs.Split(Hole{Offset: 900, Length: 100}))
	assert.Equal(t, []Hole{{Offset: 100, Length: 800}}, hs.Holes())

	// exact cover: the hole disappears
	assert.NoError(t, hs.Split(Hole{Offset: 100, Length: 800}))
	assert.True(t, hs.Empty())
}

func Test_SplitNotContained(t *testing.T) {
	hs := NewHoleSet(1000)
	assert.NoError(t, hs.Split(Hole{Offset: 400, Length: 200}))

	// straddles the gap left by the previous split
	err := hs.Split(Hole{Offset: 300, Length: 200})
	assert.Equal(t, ErrHoleNotFound, errors.Cause(err))

	// entirely inside the already-matched range
	err = hs.Split(Hole{Offset: 450, Length: 100})
	assert.Equal(t, ErrHoleNotFound, errors.Cause(err))

	// past the end of everything
	err = hs.Split(Hole{Offset: 5000, Length: 10})
	assert.Equal(t, ErrHoleNotFound, errors.Cause(err))
}

func Test_FindContaining(t *testing.T) {
	hs := NewHoleSet(1000)
	assert.NoError(t, hs.Split(Hole{Offset: 400, Length: 200}))

	i, ok := hs.FindContaining(0)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = hs.FindContaining(399)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	// half-open: 400 is matched, not in any hole
	_, ok = hs.FindContaining(400)
	assert.False(t, ok)

	i, ok = hs.FindContaining(600)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = hs.FindContaining(1000)
	assert.False(t, ok)
}

// After any sequence of splits, the remaining holes must stay sorted,
// non-overlapping, and their union must equal the initial range minus all
// split arguments.
func Test_SplitInvariant(t *testing.T) {
	const total = 100000
	prng := rand.New(rand.NewSource(0x5eed))

	hs := NewHoleSet(total)
	var removed uint64

	for i := 0; i < 200; i++ {
		holes := hs.Holes()
		if len(holes) == 0 {
			break
		}
		parent := holes[prng.Intn(len(holes))]
		if parent.Length < 2 {
			continue
		}

		length := uint64(prng.Int63n(int64(parent.Length))) + 1
		offset := parent.Offset + uint64(prng.Int63n(int64(parent.Length-length+1)))
		assert.NoError(t, hs.Split(Hole{Offset: offset, Length: length}))
		removed += length

		var union uint64
		var prevEnd uint64
		for j, h := range hs.Holes() {
			assert.NotZero(t, h.Length)
			if j > 0 {
				assert.GreaterOrEqual(t, h.Offset, prevEnd)
			}
			prevEnd = h.End()
			union += h.Length
		}
		assert.EqualValues(t, total-removed, union)
	}
}
