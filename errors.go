// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For EnqueueOne: the ring is full.
// For DequeueOne: the ring is empty.
// EnqueueMany and DequeueMany do not return it; they report the same
// outcomes as a count of 0.
//
// ErrWouldBlock is a control flow signal, not a failure, and can also be a
// legal spurious outcome under contention even when the ring has slack or
// items in principle available — the retry budget caps worst-case latency.
// The caller should poll at its own cadence rather than propagating the
// error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.EnqueueOne(payload)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if lfring.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition,
// such as nil or ErrWouldBlock. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
