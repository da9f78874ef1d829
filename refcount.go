package bytebuf

import (
	"fmt"
	"sync/atomic"
)

// RefCount is an atomic reservation counter with a release action that fires
// exactly once, on the transition to zero. The counter itself is safe for
// concurrent use; the guarded payload is not resurrected after release.
//
// The zero transition is terminal: Reserve on a drained counter fails with
// ErrLifecycleMisuse instead of silently reviving the resource.
type RefCount struct {
	count     atomic.Int64
	onRelease func() error
}

// NewRefCount returns a counter holding one reservation for the creator.
// onRelease runs when the count reaches zero; it may be nil.
func NewRefCount(onRelease func() error) *RefCount {
	rc := &RefCount{onRelease: onRelease}
	rc.count.Store(1)
	return rc
}

// Reserve adds a reservation. It fails if the count already reached zero,
// synchronized against a racing Release via compare-and-swap.
func (rc *RefCount) Reserve() error {
	for {
		n := rc.count.Load()
		if n <= 0 {
			return fmt.Errorf("%w: reserve on released resource", ErrLifecycleMisuse)
		}
		if rc.count.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

// Release drops a reservation. The caller that moves the count to zero runs
// the release action; every later Release fails.
func (rc *RefCount) Release() error {
	for {
		n := rc.count.Load()
		if n <= 0 {
			return fmt.Errorf("%w: release without matching reserve", ErrLifecycleMisuse)
		}
		if rc.count.CompareAndSwap(n, n-1) {
			if n == 1 && rc.onRelease != nil {
				return rc.onRelease()
			}
			return nil
		}
	}
}

// Count returns the current reservation count.
func (rc *RefCount) Count() int64 {
	return rc.count.Load()
}

// Released reports whether the count has reached zero.
func (rc *RefCount) Released() bool {
	return rc.count.Load() <= 0
}
