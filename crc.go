// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"sync"
	"sync/atomic"
)

// crcPoly is the reflected IEEE 802.3 polynomial.
const crcPoly = 0xEDB88320

var (
	crcOnce  sync.Once
	crcReady atomic.Bool
	crcTable [256]uint32
)

// InitTables builds the process-wide lookup tables used by [CRC32].
// It must be called before the first checksum; [Core] calls it. Further
// calls, from any goroutine, have no effect.
func InitTables() {
	crcOnce.Do(func() {
		for i := range crcTable {
			c := uint32(i)
			for range 8 {
				if c&1 != 0 {
					c = c>>1 ^ crcPoly
				} else {
					c >>= 1
				}
			}
			crcTable[i] = c
		}
		crcReady.Store(true)
	})
}

// CRC32 returns the IEEE checksum of data.
// Panics if [InitTables] has not run.
func CRC32(data []byte) uint32 {
	return crcUpdate(0, data)
}

func crcUpdate(crc uint32, data []byte) uint32 {
	if !crcReady.Load() {
		panic("sigma: checksum before InitTables")
	}
	crc = ^crc
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ crc>>8
	}
	return ^crc
}
