package latest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_NewestWins(t *testing.T) {
	t.Parallel()

	var tr Tracker
	a := tr.Begin("app")
	require.True(t, tr.Current(a))

	b := tr.Begin("apple")
	require.False(t, tr.Current(a))
	require.True(t, tr.Current(b))
	require.Equal(t, "apple", b.Key)
}

func TestTracker_SameKeyStillSupersedes(t *testing.T) {
	t.Parallel()

	var tr Tracker
	a := tr.Begin("AAPL")
	b := tr.Begin("AAPL")
	require.False(t, tr.Current(a))
	require.True(t, tr.Current(b))
}

func TestTracker_Concurrent(t *testing.T) {
	t.Parallel()

	var tr Tracker
	var wg sync.WaitGroup
	tickets := make([]Ticket, 100)
	for i := range tickets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets[i] = tr.Begin("q")
		}(i)
	}
	wg.Wait()

	current := 0
	for _, tk := range tickets {
		if tr.Current(tk) {
			current++
		}
	}
	require.Equal(t, 1, current)
}
