package pattern

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestRandomPatternValid(t *testing.T) {
	g := Standard()
	rng := rand.New(rand.NewSource(1))
	for k := 1; k <= 9; k++ {
		for trial := 0; trial < 20; trial++ {
			p, err := g.RandomPattern(k, rng)
			if err != nil {
				t.Fatalf("RandomPattern(%d) returned an error: %v", k, err)
			}
			if len(p) != k {
				t.Errorf("RandomPattern(%d) gave length %d: %v", k, len(p), p)
			}
			if e := g.Validate(p); e != nil {
				t.Errorf("RandomPattern(%d) gave invalid pattern %q: %v", k, p, e)
			}
		}
	}
}

func TestRandomPatternReproducible(t *testing.T) {
	g := Standard()
	a, err := g.RandomPattern(6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("First seeded RandomPattern returned an error: %v", err)
	}
	b, err := g.RandomPattern(6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Second seeded RandomPattern returned an error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed gave different patterns: %v vs %v", a, b)
	}
}

func TestRandomPatternErrors(t *testing.T) {
	g := Standard()
	_, e := g.RandomPattern(0, nil)
	err, ok := e.(Error)
	if !ok || err.Condition != TooSmallCondition {
		t.Errorf("Wrong error on length 0: %v", e)
	}
	_, e = g.RandomPattern(10, nil)
	err, ok = e.(Error)
	if !ok || err.Condition != TooLargeCondition {
		t.Errorf("Wrong error on length 10: %v", e)
	}
}
