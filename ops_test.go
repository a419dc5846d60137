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
	"testing"

	"github.com/marlow-lang/typecheck/ty"
)

// traceOp records its executions and optionally performs a follow-up
// action, standing in for the real suspended operations.
type traceOp struct {
	id   int
	log  *[]int
	then func(c *TypeChecker)
}

func (op *traceOp) execute(c *TypeChecker) {
	*op.log = append(*op.log, op.id)
	if op.then != nil {
		op.then(c)
	}
}

func newOpsChecker() *TypeChecker {
	c := &TypeChecker{tables: ty.NewTables(), results: NewResults()}
	c.unify = NewUnificationTable(shallowCombine)
	return c
}

func TestSuspendedOpsRunInSuspensionOrder(t *testing.T) {
	c := newOpsChecker()
	v := c.unify.NewVariable()

	var log []int
	for i := 1; i <= 3; i++ {
		c.suspend(&traceOp{id: i, log: &log}, v)
	}
	c.drainOps()
	if len(log) != 0 {
		t.Fatalf("nothing resolved, but ops ran: %v", log)
	}

	if err := c.unify.UnifyValue(v, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	c.drainOps()
	if len(log) != 3 || log[0] != 1 || log[1] != 2 || log[2] != 3 {
		t.Fatalf("expected execution order [1 2 3], got %v", log)
	}
}

func TestOpBlockedOnTwoVariablesRunsOnce(t *testing.T) {
	c := newOpsChecker()
	v1, v2 := c.unify.NewVariable(), c.unify.NewVariable()

	var log []int
	c.suspend(&traceOp{id: 1, log: &log}, v1, v2)

	if err := c.unify.UnifyValue(v1, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	c.drainOps()
	if err := c.unify.UnifyValue(v2, ty.BaseData{Kind: ty.BoolType}); err != nil {
		t.Fatal(err)
	}
	c.drainOps()

	if len(log) != 1 {
		t.Fatalf("op must run exactly once, ran %d times", len(log))
	}
}

func TestChainedSuspensionDrainsToQuiescence(t *testing.T) {
	c := newOpsChecker()
	v1, v2 := c.unify.NewVariable(), c.unify.NewVariable()

	var log []int
	// the first op, once resumed, parks a second op and then resolves its
	// variable; one drain must run the whole chain
	c.suspend(&traceOp{id: 1, log: &log, then: func(c *TypeChecker) {
		c.suspend(&traceOp{id: 2, log: &log}, v2)
		if err := c.unify.UnifyValue(v2, ty.BaseData{Kind: ty.UnitType}); err != nil {
			t.Fatal(err)
		}
	}}, v1)

	if err := c.unify.UnifyValue(v1, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	c.drainOps()

	if len(log) != 2 || log[0] != 1 || log[1] != 2 {
		t.Fatalf("expected chained execution [1 2], got %v", log)
	}
}

func TestSuspendOnResolvedVariableRunsOnNextDrain(t *testing.T) {
	c := newOpsChecker()
	v := c.unify.NewVariable()
	if err := c.unify.UnifyValue(v, ty.BaseData{Kind: ty.BoolType}); err != nil {
		t.Fatal(err)
	}

	var log []int
	c.suspend(&traceOp{id: 1, log: &log}, v)
	c.drainOps()

	if len(log) != 1 {
		t.Fatalf("op on an already-resolved variable must run, log %v", log)
	}
}
