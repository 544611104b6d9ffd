// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import "sync"

// Frame pool for the machine's activation records.
// releaseFrame zeroes all fields and keeps the locals and cleanup
// backing arrays, so steady-state evaluation allocates no frames.
// Pooled frames are single-use: a frame must not be touched after it
// left the stack.

var framePool = sync.Pool{New: func() any { return new(Frame) }}

func acquireFrame(m *Machine, t *Task, c Callable, params []Item) *Frame {
	f := framePool.Get().(*Frame)
	f.m = m
	f.task = t
	f.callee = c
	f.params = params
	f.state = FrameInit
	return f
}

func releaseFrame(f *Frame) {
	f.reset()
	framePool.Put(f)
}
