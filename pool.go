// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring

import "sync"

// KindPlain is the only ring kind this pool serves. Acquire rejects
// any other kind tag with a nil handle; other queue kinds belong to
// the outer queue abstraction this package does not implement.
const KindPlain = "plain"

// poolSize is the number of preallocated rings in the process-wide
// pool.
const poolSize = 128

// Capabilities reports what PoolInit found on this platform.
//
// NumRings is 0 when the platform lacks hardware lock-free 16-byte
// CAS; in that case Capacity is also 0 and no other function in this
// package may be called. The caller is expected to fall back to a
// different queue implementation.
type Capabilities struct {
	Capacity int // per-ring capacity, always 32 when available
	NumRings int // number of rings in the pool, always 128 when available
}

// poolMu guards the pool's lifecycle (init/teardown/slot bookkeeping
// array pointer) only. It is never held during EnqueueOne/DequeueOne,
// which are not on this mutex's path — acquiring and releasing a ring
// is explicitly not a hot-path operation (spec.md §4.3.2).
var (
	poolMu    sync.Mutex
	poolRings *[poolSize]Ring
)

// PoolInit reserves the process-wide ring pool. It must be called
// exactly once per process before any call to Acquire.
//
// If the platform does not offer hardware lock-free 16-byte CAS,
// PoolInit reports the subsystem unavailable (NumRings == 0) and
// reserves nothing; it is never acceptable to substitute a
// lock-based emulation, so there is no other fallback path within
// this package.
//
// Calling PoolInit again after a prior successful call (without an
// intervening PoolTeardown) is a no-op that returns the same
// capabilities; it does not reset rings already acquired.
func PoolInit() Capabilities {
	if !dwCASLockFree {
		return Capabilities{}
	}

	poolMu.Lock()
	defer poolMu.Unlock()

	if poolRings == nil {
		poolRings = new([poolSize]Ring)
	}

	return Capabilities{Capacity: ringCapacity, NumRings: poolSize}
}

// PoolTeardown releases the pool's shared state. Safe to call if the
// pool was never initialized or has already been torn down.
//
// After PoolTeardown returns, no ring handle obtained from this pool
// remains valid; the caller must ensure no operation is still in
// flight on any such ring before calling it.
func PoolTeardown() {
	poolMu.Lock()
	defer poolMu.Unlock()
	poolRings = nil
}

// Acquire returns a fresh ring handle for kind, or nil if kind is not
// KindPlain, the pool was never initialized (or was torn down), or
// every ring is currently in use.
//
// The returned ring's node array and enqueue counter are fully
// reinitialized before the handle is returned, so a reused ring
// behaves identically to a never-before-used one. Slot selection uses
// atomic test-and-set on each ring's in-use flag, so concurrent
// Acquire calls never race onto the same ring.
func Acquire(kind string) *Ring {
	if kind != KindPlain {
		return nil
	}

	poolMu.Lock()
	rings := poolRings
	poolMu.Unlock()

	if rings == nil {
		return nil
	}

	for i := range rings {
		r := &rings[i]
		if r.inUse.CompareAndSwapAcqRel(0, 1) {
			r.reset()
			return r
		}
	}

	return nil
}

// Release marks r's slot free. r becomes invalid; the caller must
// guarantee no enqueue/dequeue on r is concurrent with or follows
// this call — violating that is undefined behavior and is not
// detected. Release on a nil ring is a no-op.
func Release(r *Ring) {
	if r == nil {
		return
	}
	r.inUse.StoreRelease(0)
}
