package dispatch_test

import (
	"sync"
	"testing"

	"github.com/jrsteele09/go-internship-client/internal/dispatch"
	"github.com/stretchr/testify/require"
)

func sum(state, event int) int { return state + event }

func TestDispatcher(t *testing.T) {
	d := dispatch.New(10, sum)

	var seen []int
	d.Subscribe(func(state, _ int) { seen = append(seen, state) })

	require.Equal(t, 11, d.Dispatch(1))
	require.Equal(t, 13, d.Dispatch(2))
	require.Equal(t, 13, d.State())
	require.Equal(t, []int{1, 2}, d.Events())
	require.Equal(t, []int{11, 13}, seen)
}

func TestDispatcher_ListenerMayDispatch(t *testing.T) {
	d := dispatch.New(0, sum)
	d.Subscribe(func(state, event int) {
		if event == 1 {
			d.Dispatch(100)
		}
	})
	d.Dispatch(1)
	require.Equal(t, 101, d.State())
}

func TestDispatcher_Concurrent(t *testing.T) {
	d := dispatch.New(0, sum)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(1)
		}()
	}
	wg.Wait()
	require.Equal(t, 50, d.State())
	require.Len(t, d.Events(), 50)
}
