// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring

import "code.hybscloud.com/atomix"

const (
	// ringCapacity is the fixed number of slots in a ring. It is part
	// of the ABI the caller sees and is never configurable.
	ringCapacity = 32

	// enqRetries bounds the number of CAS attempts EnqueueOne makes
	// before reporting the ring full.
	enqRetries = ringCapacity / 4

	// deqRetries bounds the number of CAS attempts DequeueOne makes
	// before reporting the ring empty.
	deqRetries = ringCapacity / 8
)

// pad is cache-line padding to prevent false sharing between fields.
type pad [64]byte

// Ring is a fixed 32-slot lock-free bounded MPMC FIFO queue.
//
// Any number of goroutines may call EnqueueOne/EnqueueMany and
// DequeueOne/DequeueMany on the same ring concurrently. No operation
// takes a lock, blocks, or allocates; every call completes within a
// bounded number of atomic operations. Dequeue delivers payloads in
// increasing sequence-counter order as observed at the moment of its
// scan — not global submission order (see package doc).
//
// Rings are obtained only through [Acquire] after [PoolInit]; callers
// never allocate rings directly.
type Ring struct {
	_          pad
	nodes      [ringCapacity]node
	_          pad
	enqCounter atomix.Uint64
	_          pad
	inUse      atomix.Uint32 // pool-owned; ring operations never touch this
	_          pad
}

// reset zero-initializes the node array and enqueue counter. Called
// only by the pool, under its single-writer discipline, before a ring
// is handed out by Acquire.
func (r *Ring) reset() {
	for i := range r.nodes {
		r.nodes[i].storeZero()
	}
	r.enqCounter.StoreRelaxed(0)
}

// Cap returns the ring's fixed capacity (always 32).
func (r *Ring) Cap() int {
	return ringCapacity
}

// EnqueueOne adds payload to the ring. payload's low bit must be zero
// (true for any pointer into at least 2-byte-aligned storage); this is
// the caller's responsibility and is not checked on the hot path.
//
// Returns nil once payload is visible to dequeuers, or ErrWouldBlock
// if no empty slot could be claimed within the retry budget — this can
// happen even when the ring is not logically full, as the cost of
// bounding worst-case latency. The enqueue counter advances by one
// regardless of outcome.
func (r *Ring) EnqueueOne(payload uintptr) error {
	counter := r.enqCounter.AddAcqRel(1) - 1

	iNode := -1
	for attempt := 0; attempt < enqRetries; attempt++ {
		var (
			slot  *node
			old   decoded
			found bool
		)

		for i := 0; i < ringCapacity; i++ {
			iNode = (iNode + 1) % ringCapacity
			candidate := &r.nodes[iNode]
			d := candidate.load()
			if !d.mark {
				slot, old, found = candidate, d, true
				break
			}
		}

		if !found {
			return ErrWouldBlock
		}

		newLo, newHi := pack(true, payload, counter)
		if slot.casRelease(old, newLo, newHi) {
			return nil
		}
		// Another enqueuer won this slot; retry from the next position.
	}

	return ErrWouldBlock
}

// EnqueueMany is a best-effort batch enqueue. It accepts at most the
// first element of payloads per call, matching the reference
// implementation's semantics, and returns the number accepted (0 or
// 1). An empty payloads slice accepts nothing.
func (r *Ring) EnqueueMany(payloads []uintptr) (accepted int) {
	if len(payloads) == 0 {
		return 0
	}
	if r.EnqueueOne(payloads[0]) == nil {
		return 1
	}
	return 0
}

// DequeueOne removes and returns the oldest payload currently visible
// to the scan (see package doc for the visibility-order caveat), or
// ErrWouldBlock if no marked slot was observed within the retry
// budget — a legal spurious empty under contention.
func (r *Ring) DequeueOne() (uintptr, error) {
	iNode := -1
	for attempt := 0; attempt < deqRetries; attempt++ {
		var (
			slot    *node
			lowest  decoded
			found   bool
			scanPos = iNode
		)

		for i := 0; i < ringCapacity; i++ {
			scanPos = (scanPos + 1) % ringCapacity
			candidate := &r.nodes[scanPos]
			d := candidate.load()
			if d.mark && (!found || d.count < lowest.count) {
				slot, lowest, found = candidate, d, true
			}
		}
		iNode = scanPos

		if !found {
			return 0, ErrWouldBlock
		}

		newLo, newHi := pack(false, lowest.payload, lowest.count)
		if slot.casAcquire(lowest, newLo, newHi) {
			return lowest.payload, nil
		}
		// Another dequeuer claimed it first; retry.
	}

	return 0, ErrWouldBlock
}

// DequeueMany is a best-effort batch dequeue. It fills at most out[0]
// per call, matching the reference implementation's semantics, and
// returns the number returned (0 or 1). An empty out slice returns
// nothing.
func (r *Ring) DequeueMany(out []uintptr) (n int) {
	if len(out) == 0 {
		return 0
	}
	v, err := r.DequeueOne()
	if err != nil {
		return 0
	}
	out[0] = v
	return 1
}
