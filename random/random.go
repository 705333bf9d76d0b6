package random

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	_globalRand *rand.Rand
	_randLock   sync.Mutex
)

func init() {
	g := NewUltraFastWide(DefaultParams[uint32](), uint64(time.Now().UnixNano()))
	_globalRand = NewRand(g)
}

// SeedGlobal reseeds the package generator, making the helpers below
// reproducible when they are called with a nil *rand.Rand.
func SeedGlobal(seed uint64) {
	_randLock.Lock()
	defer _randLock.Unlock()
	_globalRand = NewRand(NewUltraFastWide(DefaultParams[uint32](), seed))
}

// Intn returns, as an int, a non-negative pseudo-random number in [0,n).
// A nil r uses the package generator. It panics if n <= 0.
func Intn(r *rand.Rand, n int) int {
	if r != nil {
		return r.Intn(n)
	}
	_randLock.Lock()
	defer _randLock.Unlock()
	return _globalRand.Intn(n)
}

// Sample picks n of values without replacement. values is not modified.
// When n covers every value a copy of values is returned in order, a
// negative n picks nothing.
func Sample[V any](r *rand.Rand, values []V, n int) []V {
	if n < 0 {
		n = 0
	}
	size := len(values)
	filter := make([]V, size)
	copy(filter, values)
	if size == 0 || n >= size {
		return filter
	}
	list := make([]V, 0, n)
	for i := 0; i < n; i++ {
		index := Intn(r, len(filter))
		list = append(list, filter[index])
		filter = append(filter[:index], filter[index+1:]...)
	}
	return list
}

// Weighted is a value with a selection weight.
type Weighted[V any] struct {
	Value  V
	Weight int
}

// WeightedPick picks up to n items without replacement, each with a
// probability proportional to its weight. Items weighing zero or less are
// never picked.
func WeightedPick[V any](r *rand.Rand, items []Weighted[V], n int) []V {
	pool := make([]Weighted[V], 0, len(items))
	var weightSum int
	for _, item := range items {
		if item.Weight > 0 {
			pool = append(pool, item)
			weightSum += item.Weight
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}
	picked := make([]V, 0, n)
	for j := 0; j < n; j++ {
		ranNum := Intn(r, weightSum)
		for i := range pool {
			ranNum -= pool[i].Weight
			if ranNum < 0 {
				picked = append(picked, pool[i].Value)
				weightSum -= pool[i].Weight
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return picked
}

// PickGroups splits expr on "#" and picks one number from every group with
// Pick, e.g. "2~10:40#10:20,10~45:30".
func PickGroups(r *rand.Rand, expr string) ([]int, error) {
	groups := strings.Split(expr, "#")
	ints := make([]int, 0, len(groups))
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		v, err := Pick(r, group, 1)
		if err != nil {
			return nil, err
		}
		ints = append(ints, v[0])
	}
	return ints, nil
}

// Pick draws n numbers from a comma separated list of choices.
//
//	fixed:    12
//	range:    1~10          (any value in [1,10])
//	list:     1,2,4 or 1~10,44~89
//	weighted: 1:20,1~4:30,4:500
//
// Weights are relative and only apply when every choice carries one. Ranges
// are resolved while parsing, so a range choice yields one value per call.
func Pick(r *rand.Rand, expr string, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid count %d for %q", n, expr)
	}
	choices := strings.Split(expr, ",")
	size := len(choices)
	if n > size {
		n = size
	}
	if !strings.Contains(expr, ":") {
		numbers := make([]int, size)
		for i, choice := range choices {
			v, err := resolve(r, choice)
			if err != nil {
				return nil, fmt.Errorf("invalid choice %q in %q: %w", choice, expr, err)
			}
			numbers[i] = v
		}
		if n == 1 {
			return []int{numbers[Intn(r, size)]}, nil
		}
		return Sample(r, numbers, n), nil
	}

	items := make([]Weighted[int], size)
	for i, choice := range choices {
		idx := strings.Index(choice, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid choice %q in %q: missing weight", choice, expr)
		}
		weight, err := strconv.Atoi(choice[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q in %q: %w", choice, expr, err)
		}
		v, err := resolve(r, choice[:idx])
		if err != nil {
			return nil, fmt.Errorf("invalid choice %q in %q: %w", choice, expr, err)
		}
		items[i] = Weighted[int]{Value: v, Weight: weight}
	}
	return WeightedPick(r, items, n), nil
}

// resolve parses "12" or "1~10"
func resolve(r *rand.Rand, s string) (int, error) {
	lo, hi, found := strings.Cut(s, "~")
	if !found {
		return strconv.Atoi(s)
	}
	v1, err := strconv.Atoi(lo)
	if err != nil {
		return 0, err
	}
	v2, err := strconv.Atoi(hi)
	if err != nil {
		return 0, err
	}
	if v2 < v1 {
		return 0, fmt.Errorf("empty range %s", s)
	}
	return v1 + Intn(r, v2+1-v1), nil
}
