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

package typecheck

import (
	"github.com/marlow-lang/typecheck/hir"
	"github.com/marlow-lang/typecheck/ty"
)

// OpIndex is the stable index of a suspended operation within its session's
// arena.
type OpIndex uint32

// A suspendedOp is a single-shot unit of deferred checking work, waiting on
// one or more unresolved inference variables. Suspension is not concurrency:
// an operation yields by registering itself against its blocking variables
// and is resumed synchronously, in-thread, once one of them resolves.
//
// Operations are explicit tagged variants rather than captured closures, so
// the arena owns all deferred state and resumption order stays auditable.
type suspendedOp interface {
	execute(c *TypeChecker)
}

// opsArena stores suspended operations by index. Slots are cleared when an
// operation is consumed; a consumed index reached through a second blocking
// variable is skipped, never re-run.
type opsArena struct {
	ops []suspendedOp
}

func (a *opsArena) alloc(op suspendedOp) OpIndex {
	a.ops = append(a.ops, op)
	return OpIndex(len(a.ops) - 1)
}

// take consumes the operation at i, returning nil if it already ran.
// Taking an index that was never allocated is a programmer error.
func (a *opsArena) take(i OpIndex) suspendedOp {
	op := a.ops[i]
	a.ops[i] = nil
	return op
}

// suspend parks op until one of the blocking variables resolves.
func (c *TypeChecker) suspend(op suspendedOp, blocking ...ty.InferVar) {
	idx := c.ops.alloc(op)
	for _, v := range blocking {
		c.unify.BlockOn(v, idx)
	}
}

// drainOps runs ready operations until none remain. An operation may itself
// unify variables (making further operations ready) or suspend again on a
// new variable, forming a chain; the loop continues until the session
// quiesces. Operations whose variables never resolve are simply dropped
// when the session ends.
func (c *TypeChecker) drainOps() {
	for {
		ready := c.unify.ReadyOps()
		if len(ready) == 0 {
			return
		}
		for _, idx := range ready {
			if op := c.ops.take(idx); op != nil {
				op.execute(c)
			}
		}
	}
}

// opMethodCall resumes a method call once the owner's base type is known.
type opMethodCall struct {
	expr      hir.Expression
	ownerPerm ty.Perm
	ownerVar  ty.InferVar
	method    hir.Identifier
	argTys    []ty.Ty
	result    ty.Ty
}

func (op *opMethodCall) execute(c *TypeChecker) {
	data, ok := c.unify.Resolve(op.ownerVar)
	if !ok {
		panic("typecheck: operation resumed before its variable resolved")
	}
	actual := c.finishMethodCall(op.expr, op.ownerPerm, data, op.method, op.argTys)
	c.family.EquateTypes(c, op.expr.Meta(), actual, op.result)
}

// opFieldProjection resumes a field projection once the owner's base type is
// known.
type opFieldProjection struct {
	place     hir.Place
	ownerPerm ty.Perm
	ownerVar  ty.InferVar
	name      hir.Identifier
	result    ty.Ty
}

func (op *opFieldProjection) execute(c *TypeChecker) {
	data, ok := c.unify.Resolve(op.ownerVar)
	if !ok {
		panic("typecheck: operation resumed before its variable resolved")
	}
	actual := c.finishFieldProjection(op.place, op.ownerPerm, data, op.name)
	c.family.EquateTypes(c, op.place.Meta(), actual, op.result)
}
