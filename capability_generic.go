// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64 && !riscv64 && !loong64

package lfring

// dwCASLockFree is false on architectures without a known lock-free
// 16-byte CAS. PoolInit reports the subsystem unavailable on these
// platforms; there is no lock-based emulation fallback.
const dwCASLockFree = false
