// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring

import "code.hybscloud.com/atomix"

// markBit is the position of the mark flag within a node's low word.
// ptr occupies the remaining 63 bits, shifted right by one: payloads
// are at least 2-byte aligned, so bit 0 of a payload is always zero
// and can be reclaimed by the mark.
const markBit = 63

// node is one double-word (128-bit) slot of a ring.
//
// The layout is part of the contract: mark, ptr, and count are CAS-ed
// together as a single atomic word so that a dequeuer claiming a slot
// can never observe a mark/payload pair that was not installed
// atomically by one enqueuer. Splitting these fields into separate
// atomics would break the ABA-avoidance the counter provides and the
// mutual exclusion the mark provides.
//
//	lo = mark<<63 | ptr   (ptr is already payload>>1)
//	hi = count
type node struct {
	entry atomix.Uint128
	_     [64 - 16]byte // pad to cache line
}

// decoded is the unpacked view of a node's word, plus the raw lo/hi
// it was read from (needed as the CAS "expected" value).
type decoded struct {
	lo, hi  uint64
	mark    bool
	payload uintptr
	count   uint64
}

func decode(lo, hi uint64) decoded {
	return decoded{
		lo:      lo,
		hi:      hi,
		mark:    lo>>markBit != 0,
		payload: uintptr(lo&(uint64(1)<<markBit-1)) << 1,
		count:   hi,
	}
}

func pack(mark bool, payload uintptr, count uint64) (lo, hi uint64) {
	lo = uint64(payload) >> 1
	if mark {
		lo |= uint64(1) << markBit
	}
	return lo, count
}

// load samples the node with relaxed ordering. The result is a hint:
// any decision made from it must be re-validated by a subsequent CAS,
// which serves as the acquire fence.
func (n *node) load() decoded {
	lo, hi := n.entry.LoadRelaxed()
	return decode(lo, hi)
}

// storeZero clears the node with a relaxed store. Used only during
// ring initialization, before any other thread can observe it.
func (n *node) storeZero() {
	n.entry.StoreRelaxed(0, 0)
}

// casRelease attempts to publish newLo/newHi. atomix.Uint128 exposes
// only the combined CompareAndSwapAcqRel for its success ordering (no
// split Release/Acquire CAS, the same surface mpmc_128_seq.go and
// mpmc_128.go are built on); AcqRel is a strengthening of the release
// this call needs, so a dequeuer whose acquire-CAS observes the new
// value also observes every write the enqueuer made before the CAS.
func (n *node) casRelease(old decoded, newLo, newHi uint64) bool {
	return n.entry.CompareAndSwapAcqRel(old.lo, old.hi, newLo, newHi)
}

// casAcquire attempts to claim old's payload. Same AcqRel strengthening
// as casRelease, applied on the claiming side.
func (n *node) casAcquire(old decoded, newLo, newHi uint64) bool {
	return n.entry.CompareAndSwapAcqRel(old.lo, old.hi, newLo, newHi)
}
