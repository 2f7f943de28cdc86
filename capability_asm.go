// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64 || riscv64 || loong64

package lfring

// dwCASLockFree reports whether this platform offers hardware
// lock-free 16-byte compare-and-swap. All architectures this module
// builds assembly fast paths for elsewhere in the ecosystem
// (amd64, arm64, riscv64, loong64) provide it.
const dwCASLockFree = true
