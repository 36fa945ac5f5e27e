package sync_test

import (
	"testing"

	re_sync "github.com/stratumfs/stratumfs/pkg/sync"
	"github.com/stretchr/testify/require"
)

func TestWriteGate(t *testing.T) {
	t.Run("AcquireRelease", func(t *testing.T) {
		wg := re_sync.NewWriteGate()
		require.True(t, wg.Acquire())
		require.True(t, wg.Acquire())
		wg.Release()
		wg.Release()
	})

	t.Run("FrozenGateRejectsWriters", func(t *testing.T) {
		wg := re_sync.NewWriteGate()
		wg.Freeze()
		require.False(t, wg.Acquire())
		wg.Unfreeze()
		require.True(t, wg.Acquire())
		wg.Release()
	})

	t.Run("FreezeWaitsForDrain", func(t *testing.T) {
		wg := re_sync.NewWriteGate()
		require.True(t, wg.Acquire())

		frozen := make(chan struct{})
		go func() {
			wg.Freeze()
			close(frozen)
		}()

		// Freeze() returns only after the active writer leaves.
		wg.Release()
		<-frozen
		require.False(t, wg.Acquire())

		wg.Unfreeze()
		require.True(t, wg.Acquire())
		wg.Release()
	})

	t.Run("UnbalancedRelease", func(t *testing.T) {
		wg := re_sync.NewWriteGate()
		require.Panics(t, func() { wg.Release() })
	})
}
