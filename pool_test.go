// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/lfring"
)

// TestPoolCapabilityGate covers S6: PoolInit's report is internally
// consistent — either the platform is fully available (capacity 32,
// 128 rings) or fully unavailable (both zero). This package's test
// binary cannot force the unavailable branch (it is chosen by
// //go:build at compile time), but the contract holds on any
// platform the suite runs on.
func TestPoolCapabilityGate(t *testing.T) {
	switch {
	case caps.NumRings == 0:
		if caps.Capacity != 0 {
			t.Fatalf("unavailable pool reported capacity %d, want 0", caps.Capacity)
		}
	case caps.NumRings == 128:
		if caps.Capacity != 32 {
			t.Fatalf("available pool reported capacity %d, want 32", caps.Capacity)
		}
	default:
		t.Fatalf("unexpected NumRings %d, want 0 or 128", caps.NumRings)
	}
}

// TestAcquireRejectsUnknownKind confirms Acquire only serves
// KindPlain.
func TestAcquireRejectsUnknownKind(t *testing.T) {
	if caps.NumRings == 0 {
		t.Skip("skip: platform lacks lock-free 16-byte CAS")
	}
	if r := lfring.Acquire("scheduled"); r != nil {
		lfring.Release(r)
		t.Fatal("Acquire with an unknown kind returned a non-nil ring")
	}
}

// TestPoolExhaustionAndRecycling covers S5 and invariants 9 and 10:
// the 129th acquire without a release returns nil; after releasing
// one, acquire succeeds again and the recycled ring behaves as
// freshly initialized.
func TestPoolExhaustionAndRecycling(t *testing.T) {
	if caps.NumRings == 0 {
		t.Skip("skip: platform lacks lock-free 16-byte CAS")
	}

	held := make([]*lfring.Ring, 0, caps.NumRings)
	for range caps.NumRings {
		r := lfring.Acquire(lfring.KindPlain)
		if r == nil {
			t.Fatalf("acquire %d: got nil before exhaustion", len(held))
		}
		held = append(held, r)
	}

	if extra := lfring.Acquire(lfring.KindPlain); extra != nil {
		lfring.Release(extra)
		t.Fatal("acquire beyond pool capacity: got a ring, want nil")
	}

	// Leave a mark on one ring, then release and reacquire a slot.
	victim := held[len(held)-1]
	held = held[:len(held)-1]
	if err := victim.EnqueueOne(0x42); err != nil {
		t.Fatalf("enqueue before release: %v", err)
	}
	lfring.Release(victim)

	recycled := lfring.Acquire(lfring.KindPlain)
	if recycled == nil {
		t.Fatal("acquire after release: got nil, want a ring")
	}
	defer lfring.Release(recycled)

	if _, err := recycled.DequeueOne(); !errors.Is(err, lfring.ErrWouldBlock) {
		t.Fatalf("recycled ring dequeue: got %v, want ErrWouldBlock (freshly empty)", err)
	}
	if err := recycled.EnqueueOne(0x2); err != nil {
		t.Fatalf("recycled ring enqueue: %v", err)
	}
	got, err := recycled.DequeueOne()
	if err != nil || got != 0x2 {
		t.Fatalf("recycled ring round trip: got (%#x, %v), want (0x2, nil)", got, err)
	}

	for _, r := range held {
		lfring.Release(r)
	}
}
