package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/watcher"
)

func TestDebouncer_Add_MultiplePathsCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/c.js")
		d.Add("/project/src/a.js")
		d.Add("/project/src/b.js")
		d.Add("/project/src/a.js")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/src/a.js", "/project/src/b.js", "/project/src/c.js"}, receivedPaths)
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var mu sync.Mutex

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		// First add starts the timer
		d.Add("/project/src/a.js")
		time.Sleep(50 * time.Millisecond)

		// Second add resets the timer
		d.Add("/project/src/b.js")
		time.Sleep(50 * time.Millisecond)

		synctest.Wait()
		mu.Lock()
		count := callCount
		mu.Unlock()
		assert.Equal(t, 0, count)

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		count = callCount
		mu.Unlock()
		require.Equal(t, 1, count)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/project/src/a.js")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/src/b.js")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
	})
}
