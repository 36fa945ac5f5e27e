package sync

import (
	"sync"
)

// WriteGate is a reference-counted gate through which operations that
// intend to mutate a shared resource must pass. Any number of writers
// may hold the gate concurrently. A separate freeze operation excludes
// new writers and waits for active ones to finish, which can be used
// to quiesce a file system mount before taking a snapshot of it.
//
// Acquire() and Release() calls must be balanced on every code path,
// including error paths.
type WriteGate struct {
	lock    sync.Mutex
	drained *sync.Cond
	writers uint
	frozen  bool
}

// NewWriteGate creates a WriteGate with no active writers that is not
// frozen.
func NewWriteGate() *WriteGate {
	wg := &WriteGate{}
	wg.drained = sync.NewCond(&wg.lock)
	return wg
}

// Acquire the gate by increasing its writer count. It returns false if
// the gate is currently frozen, in which case the caller must not
// proceed with the mutation.
func (wg *WriteGate) Acquire() bool {
	wg.lock.Lock()
	defer wg.lock.Unlock()

	if wg.frozen {
		return false
	}
	wg.writers++
	return true
}

// Release the gate by lowering its writer count.
func (wg *WriteGate) Release() {
	wg.lock.Lock()
	defer wg.lock.Unlock()

	if wg.writers == 0 {
		panic("Called Release() on WriteGate with a zero writer count")
	}
	wg.writers--
	if wg.writers == 0 {
		wg.drained.Broadcast()
	}
}

// Freeze the gate, causing subsequent Acquire() calls to fail. Freeze
// blocks until all active writers have released the gate.
func (wg *WriteGate) Freeze() {
	wg.lock.Lock()
	defer wg.lock.Unlock()

	wg.frozen = true
	for wg.writers > 0 {
		wg.drained.Wait()
	}
}

// Unfreeze the gate, allowing writers to pass through it once again.
func (wg *WriteGate) Unfreeze() {
	wg.lock.Lock()
	defer wg.lock.Unlock()

	wg.frozen = false
}
