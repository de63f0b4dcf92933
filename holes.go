package xdelta

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrHoleNotFound signals a hole-set invariant violation: a split was
// requested for a range no current hole fully contains. That is a bug in
// the delta pipeline, never an expected condition.
var ErrHoleNotFound = errors.New("hole set: no hole contains the given range")

// HoleSet tracks the unresolved ranges of the source file: sorted by
// offset, pairwise non-overlapping, never zero-length.
type HoleSet struct {
	holes []Hole
}

// NewHoleSet returns a hole set covering [0, length): a single hole, or
// none at all when length is zero.
func NewHoleSet(length uint64) *HoleSet {
	hs := &HoleSet{}
	if length > 0 {
		hs.holes = []Hole{{Offset: 0, Length: length}}
	}
	return hs
}

// Holes returns the holes in ascending offset order. The slice is owned by
// the set; callers must not mutate it.
func (hs *HoleSet) Holes() []Hole {
	return hs.holes
}

// Empty reports whether nothing is left unresolved.
func (hs *HoleSet) Empty() bool {
	return len(hs.holes) == 0
}

// Size returns the total number of unresolved bytes.
func (hs *HoleSet) Size() uint64 {
	var total uint64
	for _, h := range hs.holes {
		total += h.Length
	}
	return total
}

// FindContaining returns the index of the hole whose range contains offset.
func (hs *HoleSet) FindContaining(offset uint64) (int, bool) {
	i := sort.Search(len(hs.holes), func(i int) bool {
		return hs.holes[i].End() > offset
	})
	if i < len(hs.holes) && hs.holes[i].Offset <= offset {
		return i, true
	}
	return 0, false
}

// Split removes the range c from the hole that fully contains it,
// reinserting whatever of the parent extends past c on either side:
//
//	|-------------- parent --------------|
//	|- left -|    matched c    |- right -|
//
// A range not contained in any single hole returns ErrHoleNotFound.
func (hs *HoleSet) Split(c Hole) error {
	i, ok := hs.FindContaining(c.Offset)
	if !ok {
		return errors.WithStack(ErrHoleNotFound)
	}

	parent := hs.holes[i]
	if c.End() > parent.End() {
		return errors.WithStack(ErrHoleNotFound)
	}

	var repl []Hole
	if parent.Offset < c.Offset {
		repl = append(repl, Hole{Offset: parent.Offset, Length: c.Offset - parent.Offset})
	}
	if parent.End() > c.End() {
		repl = append(repl, Hole{Offset: c.End(), Length: parent.End() - c.End()})
	}

	hs.holes = append(hs.holes[:i], append(repl, hs.holes[i+1:]...)...)
	return nil
}
