// Package rollsum implements the 32-bit rolling checksum used for fast
// block matching. It is the librsync Rollsum (the same family as rsync's
// weak checksum and bup's rollsum): cheap to advance by one byte, with a
// digest that depends only on the current window contents.
package rollsum

const charOffset = 31

// Rollsum holds the state of a rolling checksum over a window of bytes.
// Two sums over identical window contents produce identical digests no
// matter how the state was reached (fresh Eat vs. successive Rotate).
type Rollsum struct {
	count uint32
	s1    uint32
	s2    uint32
}

// Reset returns the sum to its initial, empty-window state.
func (r *Rollsum) Reset() {
	*r = Rollsum{}
}

// Eat resets the sum and absorbs buf, seeding a window of len(buf) bytes.
func (r *Rollsum) Eat(buf []byte) {
	r.Reset()
	for _, c := range buf {
		r.In(c)
	}
}

// In absorbs a single byte, growing the window by one.
func (r *Rollsum) In(c byte) {
	r.s1 += uint32(c) + charOffset
	r.s2 += r.s1
	r.count++
}

// Rotate slides the window one position: out is the byte leaving at the
// front, in the byte entering at the back. The window size is unchanged.
func (r *Rollsum) Rotate(out, in byte) {
	r.s1 += uint32(in) - uint32(out)
	r.s2 += r.s1 - r.count*(uint32(out)+charOffset)
}

// Digest returns the current 32-bit checksum.
func (r *Rollsum) Digest() uint32 {
	return (r.s2 << 16) | (r.s1 & 0xffff)
}

// Hash returns the checksum of buf in one shot.
func Hash(buf []byte) uint32 {
	var r Rollsum
	r.Eat(buf)
	return r.Digest()
}
