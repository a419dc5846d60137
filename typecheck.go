// The MIT License (MIT)
//
// Copyright (c) 2026 The Marlow Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// typecheck infers types for Marlow function bodies.
//
// Marlow types pair a base (the data shape) with a permission describing
// how the value may be used: own, borrow, or share. The checker runs the
// same walk over a body under two strategies. BaseTypeCheck erases
// permissions and resolves only bases, so downstream queries that need
// narrow, stable inputs can depend on it alone. FullTypeCheck additionally
// threads a permission variable through every type it mints, accumulates
// ordering facts between those variables, and classifies each one as own,
// borrow, or share by running the facts to a fixpoint.
//
// Inference is demand-suspended rather than two-phase: a method call or
// field projection whose owner's base is still an unresolved inference
// variable parks itself as a suspended operation, and resumes exactly once
// when unification resolves that variable. Operations still parked at the
// end of a session mean an earlier error; their result variables freeze to
// the error sentinel.
//
// Entry points:
//
//   * BaseTypeCheck(db, entity): per-node base types and diagnostics
//   * FullTypeCheck(db, entity): the same, plus permission classifications
//
// The Database interface supplies signatures, declared types, function
// bodies, and member lookup; callers own memoization and incremental
// invalidation.
package typecheck
