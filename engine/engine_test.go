package engine

import "testing"

// fakeRand replays a fixed sequence, then falls back to def.
type fakeRand struct {
	seq []float64
	def float64
	i   int
}

func (f *fakeRand) Next() float64 {
	if f.i < len(f.seq) {
		v := f.seq[f.i]
		f.i++
		return v
	}
	f.i++
	return f.def
}

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertTrue(t *testing.T, ok bool, msg string) {
	t.Helper()
	if !ok {
		t.Errorf("%s: expected true", msg)
	}
}
