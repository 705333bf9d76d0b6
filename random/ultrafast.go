package random

import (
	"errors"
	"fmt"
	"math/bits"
)

// Default shaping constants. They are converted to the generator width the
// same way a typed conversion truncates, so UltraFast[uint8] starts from the
// low byte of each.
const (
	DefaultV1 uint64 = 4294967291 // prime less than the largest uint32
	DefaultV2 uint64 = 3999999919 // prime
	DefaultV3 uint64 = 4100000231 // prime
)

var (
	ErrNotRepresentable = errors.New("random: shaping constant not representable in width")
	ErrInvalidWidth     = errors.New("random: invalid generator width")
)

// Unsigned is the set of output types an UltraFast can be instantiated with.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Params holds the three shaping constants. V1 is loaded into c, V2 into b
// and V3 into a.
type Params[T Unsigned] struct {
	V1, V2, V3 T
}

// DefaultParams returns DefaultV1, DefaultV2 and DefaultV3 truncated to T.
func DefaultParams[T Unsigned]() Params[T] {
	v1, v2, v3 := DefaultV1, DefaultV2, DefaultV3
	return Params[T]{V1: T(v1), V2: T(v2), V3: T(v3)}
}

// NewParams checks that runtime supplied constants fit in T.
func NewParams[T Unsigned](v1, v2, v3 uint64) (Params[T], error) {
	limit := uint64(^T(0))
	for i, v := range [...]uint64{v1, v2, v3} {
		if v > limit {
			return Params[T]{}, fmt.Errorf("v%d=%d exceeds %d: %w", i+1, v, limit, ErrNotRepresentable)
		}
	}
	return Params[T]{V1: T(v1), V2: T(v2), V3: T(v3)}, nil
}

// Optional is a register override for Seed and AddEntropy. The zero value
// leaves the register alone.
type Optional[T Unsigned] struct {
	val T
	set bool
}

func Some[T Unsigned](v T) Optional[T] {
	return Optional[T]{val: v, set: true}
}

func None[T Unsigned]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.val, o.set
}

// State is a snapshot of the generator registers.
type State[T Unsigned] struct {
	X, A, B, C T
}

// UltraFast is a tiny counter-driven generator for 8, 16, 32 and 64 bit
// unsigned outputs. One step costs three XORs, two adds, a shift and an
// increment. The tick x only ever increments so the state never latches up
// on a fixed point.
//
// It is not suitable for cryptography and it is not safe for concurrent use;
// wrap it in a Locked when sharing an instance between goroutines.
//
// The zero value has all constants at zero; use one of the constructors.
type UltraFast[T Unsigned] struct {
	p          Params[T]
	x, a, b, c T
}

// NewUltraFast returns a generator at x=0, a=V3, b=V2, c=V1.
func NewUltraFast[T Unsigned](p Params[T]) *UltraFast[T] {
	return &UltraFast[T]{p: p, a: p.V3, b: p.V2, c: p.V1}
}

// NewUltraFastSeed sets the tick to x and keeps the default registers.
func NewUltraFastSeed[T Unsigned](p Params[T], x T) *UltraFast[T] {
	g := NewUltraFast(p)
	g.x = x
	return g
}

// NewUltraFastWide derives all four fields from one wide seed, which spreads
// the seed over the state of narrow generators.
func NewUltraFastWide[T Unsigned](p Params[T], v uint64) *UltraFast[T] {
	g := &UltraFast[T]{p: p}
	g.SeedWide(v)
	return g
}

// Seed sets the tick to x. p1, p2 and p3 override c, b and a when set.
func (g *UltraFast[T]) Seed(x T, p1, p2, p3 Optional[T]) {
	g.x = x
	if v, ok := p1.Get(); ok {
		g.c = v
	}
	if v, ok := p2.Get(); ok {
		g.b = v
	}
	if v, ok := p3.Get(); ok {
		g.a = v
	}
}

// SeedWide resets every field from v: x=v truncated, a=v%V3, b=v%V2, c=v%V1.
func (g *UltraFast[T]) SeedWide(v uint64) {
	g.x = T(v)
	g.a = wideMod(v, g.p.V3)
	g.b = wideMod(v, g.p.V2)
	g.c = wideMod(v, g.p.V1)
}

// AddEntropy xors p1, p2 and p3 into c, b and a. The tick is untouched.
func (g *UltraFast[T]) AddEntropy(p1, p2, p3 Optional[T]) {
	if v, ok := p1.Get(); ok {
		g.c ^= v
	}
	if v, ok := p2.Get(); ok {
		g.b ^= v
	}
	if v, ok := p3.Get(); ok {
		g.a ^= v
	}
}

// AddEntropyWide xors v reduced by each shaping constant into a, b and c.
func (g *UltraFast[T]) AddEntropyWide(v uint64) {
	g.a ^= wideMod(v, g.p.V3)
	g.b ^= wideMod(v, g.p.V2)
	g.c ^= wideMod(v, g.p.V1)
}

// Draw advances the generator one step and returns the new c.
func (g *UltraFast[T]) Draw() T {
	g.x++
	g.a = g.a ^ g.c ^ g.x
	g.b = g.b + g.a
	// the shift lets high bits of b reach the low bits of c
	g.c = (g.c + (g.b >> 1)) ^ g.a
	return g.c
}

// Next is Draw widened to uint64.
func (g *UltraFast[T]) Next() uint64 {
	return uint64(g.Draw())
}

func (g *UltraFast[T]) State() State[T] {
	return State[T]{X: g.x, A: g.a, B: g.b, C: g.c}
}

func (g *UltraFast[T]) Params() Params[T] {
	return g.p
}

// Width returns the bit width of T.
func (g *UltraFast[T]) Width() int {
	return bits.Len64(uint64(^T(0)))
}

// a zero constant leaves v truncated instead of dividing by zero
func wideMod[T Unsigned](v uint64, m T) T {
	if m == 0 {
		return T(v)
	}
	return T(v % uint64(m))
}
