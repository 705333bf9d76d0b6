package random

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand(seed uint64) *rand.Rand {
	return NewRand(NewUltraFastWide(DefaultParams[uint32](), seed))
}

func TestSample(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6, 7, 8}
	r := newTestRand(1)
	for i := 0; i < 50; i++ {
		got := Sample(r, values, 3)
		require.Len(t, got, 3)
		seen := make(map[int]bool)
		for _, v := range got {
			assert.Contains(t, values, v)
			assert.False(t, seen[v], "value %d picked twice", v)
			seen[v] = true
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, values)
	assert.Equal(t, values, Sample(r, values, 20))
	assert.Empty(t, Sample(r, []string{}, 2))
	assert.Empty(t, Sample(r, values, 0))
	assert.Empty(t, Sample(r, values, -1))
}

func TestSample_Reproducible(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e", "f"}
	assert.Equal(t, Sample(newTestRand(9), values, 4), Sample(newTestRand(9), values, 4))
}

func TestWeightedPick(t *testing.T) {
	items := []Weighted[string]{
		{Value: "never", Weight: 0},
		{Value: "rare", Weight: 1},
		{Value: "common", Weight: 99},
		{Value: "negative", Weight: -5},
	}
	r := newTestRand(3)
	counts := make(map[string]int)
	for i := 0; i < 2000; i++ {
		got := WeightedPick(r, items, 1)
		require.Len(t, got, 1)
		counts[got[0]]++
	}
	assert.Zero(t, counts["never"])
	assert.Zero(t, counts["negative"])
	assert.Greater(t, counts["common"], counts["rare"])

	all := WeightedPick(r, items, 10)
	sort.Strings(all)
	assert.Equal(t, []string{"common", "rare"}, all)
	assert.Empty(t, WeightedPick(r, items, 0))
	assert.Empty(t, WeightedPick(r, items, -1))
}

func TestPick(t *testing.T) {
	r := newTestRand(11)
	cases := []struct {
		expr string
		n    int
		in   func(v int) bool
	}{
		{"12", 1, func(v int) bool { return v == 12 }},
		{"1~10", 1, func(v int) bool { return v >= 1 && v <= 10 }},
		{"1,2,4", 1, func(v int) bool { return v == 1 || v == 2 || v == 4 }},
		{"1~10,44~89,2~5", 2, func(v int) bool { return v >= 1 && v <= 89 }},
		{"1:20,1~4:30,4:500", 2, func(v int) bool { return v >= 1 && v <= 4 }},
		{"2~10:40", 1, func(v int) bool { return v >= 2 && v <= 10 }},
		{"1,2,4", 0, nil},
		{"1:20,4:500", 0, nil},
	}
	for _, c := range cases {
		for i := 0; i < 20; i++ {
			got, err := Pick(r, c.expr, c.n)
			require.NoError(t, err, c.expr)
			require.Len(t, got, c.n, c.expr)
			for _, v := range got {
				assert.True(t, c.in(v), "%s produced %d", c.expr, v)
			}
		}
	}
}

func TestPick_Errors(t *testing.T) {
	r := newTestRand(1)
	for _, expr := range []string{"x", "1~y", "1:2,3", "1:w", "10~1", ":5"} {
		_, err := Pick(r, expr, 1)
		assert.Error(t, err, expr)
	}
	for _, expr := range []string{"1,2,4", "1:20,4:500"} {
		_, err := Pick(r, expr, -1)
		assert.Error(t, err, expr)
	}
}

func TestPickGroups(t *testing.T) {
	got, err := PickGroups(newTestRand(5), "2~10:40#10:20,10~45:30,40~80:500#7")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0] >= 2 && got[0] <= 10)
	assert.True(t, got[1] >= 10 && got[1] <= 80)
	assert.Equal(t, 7, got[2])

	_, err = PickGroups(newTestRand(5), "1#x")
	assert.Error(t, err)
}

func TestIntn_Global(t *testing.T) {
	SeedGlobal(42)
	a := []int{Intn(nil, 100), Intn(nil, 100), Intn(nil, 100)}
	SeedGlobal(42)
	b := []int{Intn(nil, 100), Intn(nil, 100), Intn(nil, 100)}
	assert.Equal(t, a, b)
	assert.Panics(t, func() { Intn(nil, 0) })
}
