// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sigma is a functional evaluation engine for an embeddable
// virtual machine: growable arrays, linked lists with iterator
// invalidation, and a library of higher-order combinators that run on a
// continuation-driven machine without host recursion.
//
// # Items
//
// [Item] is the tagged runtime value. Scalars are carried inline;
// aggregates ([Array], [List], [Dict], [Ref]) are shared by pointer.
// Every item carries an out-of-band flag beside its payload: callables
// use [Oob] values to signal control ("declined", "break", "continue")
// instead of data.
//
// # Sigmas
//
// An array whose first element is callable is a sigma. Calling it calls
// the head with the remaining elements followed by any extra arguments.
// Sigma reduction ([Frame.Eval], [Machine.Eval]) evaluates a sigma
// innermost first:
//
//	[add, [mul, 2, 3], 4]   reduces to   10
//
// Special constructs created with [NewEta] ([Iff], [Lit], [Any], ...)
// receive their arguments unevaluated.
//
// # Continuation Protocol
//
// Natives never call each other on the host stack. A [Callable] runs
// inside a [Frame] and, instead of calling, requests a nested call and
// registers a [Continuation]:
//
//   - [Frame.Call]: request one nested call
//   - [Frame.Then]: register the continuation; it stays until replaced
//   - [Frame.Return]: set the frame's result
//   - [Frame.Locals]: local slots that survive suspensions
//   - [Frame.Eval]: sigma reduction, immediate for atoms
//
// The [Machine] trampoline runs the nested call and resumes the
// continuation with its result. A frame whose nested call completes
// while it has no continuation completes with that result, which makes
// tail calls free. Deep nesting is bounded by [MachineConfig].MaxDepth,
// not by the goroutine stack.
//
// # Stepping Boundary
//
// [Machine.Start] returns a [Task]. [Task.Step] runs one trampoline step,
// so a host can interleave evaluation with its own work; [Task.Run] and
// [Machine.Call] run to completion and honor context cancellation.
// Tasks are one-shot: stepping a finished or discarded task panics.
//
// # Combinators
//
// [Core] returns the library: any, all, anyp, allp, map, xmap, filter,
// reduce, cascade, iff, choice, dolist, floop, times, firstOf, lit, eq,
// eval, min, max and arithmetic helpers. [ParseProgram] loads programs
// written as YAML sequences, and [MarshalItem] snapshots data in
// canonical CBOR.
//
// # Concurrency
//
// A Machine and the containers it touches are single-threaded. Separate
// machines may run in parallel ([RunPrograms]). [InitTables] initializes
// process-wide tables once and is safe to call from any goroutine.
package sigma
