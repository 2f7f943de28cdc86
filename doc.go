// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfring provides the lock-free ring and pool backing "plain"
// queues in a packet-processing data plane.
//
// Producers and consumers are threads pinned to separate cores that
// enqueue and dequeue opaque payload handles with no blocking, no
// allocation, and no system calls on the hot path. The package has
// three layers:
//
//   - A double-word (128-bit) atomic node, built on
//     [code.hybscloud.com/atomix]'s Uint128, packing a 1-bit mark,
//     a 63-bit payload pointer, and a 64-bit sequence count into a
//     single atomically-swung word.
//   - [Ring], a fixed 32-slot bounded MPMC queue over an array of
//     those nodes plus a monotonic enqueue counter.
//   - A process-wide pool of 128 preallocated rings, set up by
//     [PoolInit], handed out by [Acquire] and returned by [Release].
//
// # Quick start
//
//	caps := lfring.PoolInit()
//	if caps.NumRings == 0 {
//	    // platform lacks lock-free 16-byte CAS; fall back to another queue
//	    return
//	}
//	defer lfring.PoolTeardown()
//
//	r := lfring.Acquire(lfring.KindPlain)
//	if r == nil {
//	    return // pool exhausted
//	}
//	defer lfring.Release(r)
//
//	if err := r.EnqueueOne(payload); err != nil {
//	    // lfring.ErrWouldBlock: ring full, caller retries at its own cadence
//	}
//	v, err := r.DequeueOne()
//	if err == nil {
//	    use(v)
//	}
//
// # Ordering contract
//
// Counters are assigned in linearizable fetch-and-increment order, so
// enqueues are FIFO in submission order per producer and across
// producers by increment order. Dequeue returns the smallest live
// counter *visible at the moment of the scan* — not global submission
// order. A slow enqueuer holding a small counter can be overtaken by a
// faster one with a larger counter; the slow payload is delivered
// whenever its slot finally becomes visible. This is intentional: the
// ring is FIFO by visibility, not by submission.
//
// # Non-blocking, bounded retries
//
// Every operation completes within a bounded number of atomic
// operations — [Ring.EnqueueOne] within 8 retries, [Ring.DequeueOne]
// within 4 — and returns a normal full/empty outcome rather than
// blocking when the budget is exhausted. This is a deliberate
// trade-off: bounding worst-case latency over guaranteeing progress
// under sustained contention. Callers poll.
//
// # Capability gating
//
// [PoolInit] reports whether the platform offers hardware lock-free
// 16-byte compare-and-swap. Where it does not, NumRings is 0 and no
// other API in this package may be called; the caller must fall back
// to a different queue implementation. There is no lock-based
// emulation path — that would defeat the purpose of the subsystem.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely
// through atomic memory ordering on separate variables. The
// concurrency stress tests in this package's test suite are skipped
// under -race via [RaceEnabled] for that reason; correctness is
// instead exercised by plain stress runs and by following
// [code.hybscloud.com/atomix]'s documented memory-ordering contract.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the double-word
// and single-word atomics with explicit memory ordering,
// [code.hybscloud.com/iox] for the shared ErrWouldBlock sentinel, and
// [code.hybscloud.com/spin] for CPU pause instructions used while
// polling in tests and examples.
package lfring
