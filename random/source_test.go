package random

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	for _, width := range []int{8, 16, 32, 64} {
		v1, v2, v3, err := DefaultConstants(width)
		require.NoError(t, err)
		g, err := NewGenerator(width, v1, v2, v3)
		require.NoError(t, err)
		assert.Equal(t, width, g.Width())
	}

	g, err := NewGenerator(8, 239, 241, 251)
	require.NoError(t, err)
	g.SeedWide(1)
	// wide seed 1 leaves x=1, a=b=c=1
	want := NewUltraFast(sensorParams)
	want.Seed(1, Some[uint8](1), Some[uint8](1), Some[uint8](1))
	for i := 0; i < 16; i++ {
		assert.Equal(t, want.Next(), g.Next())
	}

	_, err = NewGenerator(12, 1, 2, 3)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	_, err = NewGenerator(8, DefaultV1, DefaultV2, DefaultV3)
	assert.ErrorIs(t, err, ErrNotRepresentable)
}

func TestDefaultConstants(t *testing.T) {
	v1, v2, v3, err := DefaultConstants(8)
	require.NoError(t, err)
	assert.Equal(t, []uint64{251, 175, 231}, []uint64{v1, v2, v3})

	v1, _, _, err = DefaultConstants(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(DefaultParams[uint16]().V1), v1)

	_, _, _, err = DefaultConstants(0)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestSource_Uint64(t *testing.T) {
	// eight byte draws 124 240 223 175 197 233 153 233, first draw on top
	s := NewSource(NewUltraFast(DefaultParams[uint8]()))
	assert.Equal(t, uint64(0x7cf0dfafc5e999e9), s.Uint64())

	s = NewSource(NewUltraFastSeed(DefaultParams[uint64](), 1))
	assert.Equal(t, uint64(6284900607), s.Uint64())
	assert.Equal(t, int64(16360309172>>1), s.Int63())
}

func TestSource_Seed(t *testing.T) {
	g := NewUltraFast(DefaultParams[uint8]())
	r := NewRand(g)
	r.Seed(1000)
	assert.Equal(t, State[uint8]{X: 232, A: 1000 % 231, B: 1000 % 175, C: 1000 % 251}, g.State())
}

func TestNewRand_Reproducible(t *testing.T) {
	r1 := NewRand(NewUltraFastSeed(DefaultParams[uint32](), 7))
	r2 := NewRand(NewUltraFastSeed(DefaultParams[uint32](), 7))
	for i := 0; i < 100; i++ {
		assert.Equal(t, r1.Intn(1000), r2.Intn(1000))
	}
	assert.Equal(t, r1.Perm(20), r2.Perm(20))
}

func TestReader(t *testing.T) {
	rd := NewReader(NewUltraFastSeed(DefaultParams[uint16](), 1))
	buf := make([]byte, 3)
	n, err := rd.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	// 63743=0xf8ff, 436=0x01b4
	assert.Equal(t, []byte{0xff, 0xf8, 0xb4}, buf)

	n, err = rd.Read(buf[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x01), buf[0])

	bs, err := io.ReadAll(io.LimitReader(NewReader(NewUltraFast(DefaultParams[uint8]())), 4))
	require.NoError(t, err)
	assert.Equal(t, []byte{124, 240, 223, 175}, bs)
}

func TestLocked(t *testing.T) {
	l := NewLocked(NewUltraFast(DefaultParams[uint32]()))
	const workers, each = 8, 1000
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				l.Next()
			}
		}()
	}
	wg.Wait()

	// every draw ran exactly once, so the tick equals the draw count
	g := l.g.(*UltraFast[uint32])
	assert.Equal(t, uint32(workers*each), g.State().X)
	assert.Equal(t, 32, l.Width())

	l.SeedWide(5)
	l.AddEntropyWide(0)
	assert.Equal(t, uint32(5), g.State().X)
}

func Benchmark_SourceUint64(b *testing.B) {
	s := NewSource(NewUltraFast(DefaultParams[uint8]()))
	for i := 0; i < b.N; i++ {
		s.Uint64()
	}
}
