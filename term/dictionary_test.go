package term

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIdentity(t *testing.T) {
	d := NewDictionary()
	a := d.Intern("http://example.org/a")
	b := d.Intern("http://example.org/a")
	c := d.Intern("http://example.org/b")

	require.Same(t, a, b, "equal strings must intern to the same Ref")
	require.NotSame(t, a, c)
	require.Equal(t, 2, d.Len())
}

func TestInternConcurrent(t *testing.T) {
	d := NewDictionary()
	var wg sync.WaitGroup
	results := make([]*Ref, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.Intern("shared")
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		require.Same(t, results[0], results[i])
	}
}

func TestLookupRoundTrip(t *testing.T) {
	d := NewDictionary()
	r := d.Intern("x")
	got := d.Lookup(r.ID())
	require.Same(t, r, got)
	require.Nil(t, d.Lookup(9999))
}

func TestMemoryUsage(t *testing.T) {
	d := NewDictionary()
	d.Intern("hello")
	d.Intern("world")
	require.Equal(t, 10, d.MemoryUsage())
}
