package rollsum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference vectors shared with the target-side implementation: the
// arithmetic must match bit-for-bit on both ends of a sync.
func Test_ReferenceVectors(t *testing.T) {
	vectors := []struct {
		input    string
		expected uint32
	}{
		{"", 0x00000000},
		{"\x00", 0x001f001f},
		{"abc", 0x03040183},
		{"bcd", 0x030a0186},
	}

	for _, v := range vectors {
		assert.Equal(t, v.expected, Hash([]byte(v.input)), "input %q", v.input)
	}
}

func Test_RotateMatchesEat(t *testing.T) {
	// seed(w[1..n+1]) must equal seed(w[0..n]) followed by roll(w[0], w[n])
	window := []byte("abc")
	var r Rollsum
	r.Eat(window)
	r.Rotate('a', 'd')
	assert.Equal(t, Hash([]byte("bcd")), r.Digest())
}

func Test_RotateIdentity(t *testing.T) {
	prng := rand.New(rand.NewSource(0xdeadbeef))

	for _, windowSize := range []int{1, 7, 64, 400, 1024} {
		data := make([]byte, windowSize*4)
		prng.Read(data)

		var rolled Rollsum
		rolled.Eat(data[:windowSize])

		for i := 1; i+windowSize <= len(data); i++ {
			rolled.Rotate(data[i-1], data[i+windowSize-1])

			var fresh Rollsum
			fresh.Eat(data[i : i+windowSize])
			assert.Equal(t, fresh.Digest(), rolled.Digest(),
				"window size %d, position %d", windowSize, i)
		}
	}
}

func Test_HashDiffers(t *testing.T) {
	// single-byte changes must move the digest (no collision for these)
	base := Hash([]byte("AAAAAAAA"))
	assert.NotEqual(t, base, Hash([]byte("AAAAAAAB")))
	assert.NotEqual(t, base, Hash([]byte("BAAAAAAA")))
}
