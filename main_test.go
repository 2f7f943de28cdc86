// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfring_test

import (
	"os"
	"testing"

	"code.hybscloud.com/lfring"
)

// caps is the pool's reported capability, set up once for the whole
// package's test binary. Tests that need an actual ring skip
// themselves if the platform lacks lock-free 16-byte CAS.
var caps lfring.Capabilities

func TestMain(m *testing.M) {
	caps = lfring.PoolInit()
	code := m.Run()
	lfring.PoolTeardown()
	os.Exit(code)
}

func requireRing(t *testing.T, kind string) *lfring.Ring {
	t.Helper()
	if caps.NumRings == 0 {
		t.Skip("skip: platform lacks lock-free 16-byte CAS")
	}
	r := lfring.Acquire(kind)
	if r == nil {
		t.Fatal("Acquire returned nil on a platform that reported rings available")
	}
	t.Cleanup(func() { lfring.Release(r) })
	return r
}
