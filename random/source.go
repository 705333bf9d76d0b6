package random

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

// Generator is the width independent view of an UltraFast, used where the
// width is only known at runtime (config files, scripts, the command line).
type Generator interface {
	Width() int
	Next() uint64
	SeedWide(v uint64)
	AddEntropyWide(v uint64)
}

var (
	_ Generator     = (*UltraFast[uint8])(nil)
	_ Generator     = (*Locked)(nil)
	_ rand.Source   = (*Source)(nil)
	_ rand.Source64 = (*Source)(nil)
	_ io.Reader     = (*Reader)(nil)
)

// NewGenerator builds an UltraFast of the given bit width in its default
// state. The constants must fit in the width.
func NewGenerator(width int, v1, v2, v3 uint64) (Generator, error) {
	switch width {
	case 8:
		return newGenerator[uint8](v1, v2, v3)
	case 16:
		return newGenerator[uint16](v1, v2, v3)
	case 32:
		return newGenerator[uint32](v1, v2, v3)
	case 64:
		return newGenerator[uint64](v1, v2, v3)
	}
	return nil, fmt.Errorf("width %d: %w", width, ErrInvalidWidth)
}

func newGenerator[T Unsigned](v1, v2, v3 uint64) (Generator, error) {
	p, err := NewParams[T](v1, v2, v3)
	if err != nil {
		return nil, err
	}
	return NewUltraFast(p), nil
}

// DefaultConstants returns the default shaping constants truncated to width.
func DefaultConstants(width int) (v1, v2, v3 uint64, err error) {
	switch width {
	case 8, 16, 32:
		mask := uint64(1)<<uint(width) - 1
		return DefaultV1 & mask, DefaultV2 & mask, DefaultV3 & mask, nil
	case 64:
		return DefaultV1, DefaultV2, DefaultV3, nil
	}
	return 0, 0, 0, fmt.Errorf("width %d: %w", width, ErrInvalidWidth)
}

// Source adapts a Generator to math/rand. Each 64 bit value is built from
// consecutive draws, the first draw in the most significant position.
type Source struct {
	g Generator
}

func NewSource(g Generator) *Source {
	return &Source{g: g}
}

// NewRand returns a *rand.Rand driven by g.
func NewRand(g Generator) *rand.Rand {
	return rand.New(NewSource(g))
}

// Seed implements rand.Source with a wide reseed.
func (s *Source) Seed(seed int64) {
	s.g.SeedWide(uint64(seed))
}

func (s *Source) Uint64() uint64 {
	w := s.g.Width()
	var v uint64
	for n := 0; n < 64; n += w {
		v = v<<uint(w) | s.g.Next()
	}
	return v
}

func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Locked serializes access to a Generator.
type Locked struct {
	lock sync.Mutex
	g    Generator
}

func NewLocked(g Generator) *Locked {
	return &Locked{g: g}
}

func (l *Locked) Width() int {
	return l.g.Width()
}

func (l *Locked) Next() uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.g.Next()
}

func (l *Locked) SeedWide(v uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.g.SeedWide(v)
}

func (l *Locked) AddEntropyWide(v uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.g.AddEntropyWide(v)
}

// Reader is an endless byte stream of draws, least significant byte of each
// draw first. It never returns an error.
type Reader struct {
	g    Generator
	buf  uint64
	left int
}

func NewReader(g Generator) *Reader {
	return &Reader{g: g}
}

func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		if r.left == 0 {
			r.buf = r.g.Next()
			r.left = r.g.Width() / 8
		}
		p[i] = byte(r.buf)
		r.buf >>= 8
		r.left--
	}
	return len(p), nil
}
