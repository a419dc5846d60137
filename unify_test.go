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

// shallowCombine is the compatibility check used by the table tests: kinds
// must match, and the error sentinel matches everything.
func shallowCombine(a, b ty.BaseData) error {
	if a.Kind == ty.ErrorType || b.Kind == ty.ErrorType {
		return nil
	}
	if a != b {
		return &TypeMismatch{a, b}
	}
	return nil
}

func TestUnifyMergesClasses(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a, b, c := u.NewVariable(), u.NewVariable(), u.NewVariable()

	if n := u.NumVariables(); n != 3 {
		t.Fatalf("NumVariables = %d, want 3", n)
	}
	if u.Find(a) == u.Find(b) {
		t.Fatal("fresh variables must start in distinct classes")
	}
	if err := u.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	if err := u.Unify(b, c); err != nil {
		t.Fatal(err)
	}
	if u.Find(a) != u.Find(c) {
		t.Fatal("expected a and c in one class after transitive unification")
	}
	if _, ok := u.Resolve(a); ok {
		t.Fatal("merged class must stay unresolved until a value arrives")
	}
}

func TestUnifyValuePropagatesThroughClass(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a, b := u.NewVariable(), u.NewVariable()
	if err := u.Unify(a, b); err != nil {
		t.Fatal(err)
	}

	intData := ty.BaseData{Kind: ty.IntType}
	if err := u.UnifyValue(a, intData); err != nil {
		t.Fatal(err)
	}
	got, ok := u.Resolve(b)
	if !ok {
		t.Fatal("b should resolve once its class representative has a value")
	}
	if got != intData {
		t.Fatalf("resolved to %v, want %v", got, intData)
	}
}

func TestUnifyValueMismatchLeavesStateUnchanged(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a := u.NewVariable()
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.BoolType}); err == nil {
		t.Fatal("expected mismatch unifying int with bool")
	}
	got, ok := u.Resolve(a)
	if !ok || got.Kind != ty.IntType {
		t.Fatalf("failed unification must not disturb the existing value, got %v", got)
	}
}

func TestUnifyResolvedMismatchKeepsClassesSeparate(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a, b := u.NewVariable(), u.NewVariable()
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	if err := u.UnifyValue(b, ty.BaseData{Kind: ty.BoolType}); err != nil {
		t.Fatal(err)
	}
	if err := u.Unify(a, b); err == nil {
		t.Fatal("expected mismatch unifying resolved int with resolved bool")
	}
	if u.Find(a) == u.Find(b) {
		t.Fatal("failed unification must not merge the classes")
	}
}

func TestErrorSentinelUnifiesWithAnything(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a := u.NewVariable()
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.ErrorType}); err != nil {
		t.Fatal(err)
	}
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.UintType}); err != nil {
		t.Fatalf("error sentinel must be compatible with uint: %v", err)
	}
}

func TestBlockedOpsReadyOnResolution(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a := u.NewVariable()
	u.BlockOn(a, 0)
	u.BlockOn(a, 1)

	if got := u.ReadyOps(); len(got) != 0 {
		t.Fatalf("nothing resolved yet, got ready ops %v", got)
	}
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.BoolType}); err != nil {
		t.Fatal(err)
	}
	got := u.ReadyOps()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("expected ready ops [0 1] in registration order, got %v", got)
	}
	if again := u.ReadyOps(); len(again) != 0 {
		t.Fatalf("ready queue must drain, got %v", again)
	}
}

func TestBlockOnResolvedClassIsReadyImmediately(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a := u.NewVariable()
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	u.BlockOn(a, 7)
	got := u.ReadyOps()
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected op 7 ready immediately, got %v", got)
	}
}

func TestMergeCarriesBlockedQueuesForward(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a, b := u.NewVariable(), u.NewVariable()
	u.BlockOn(a, 0)
	u.BlockOn(b, 1)

	if err := u.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	if got := u.ReadyOps(); len(got) != 0 {
		t.Fatalf("merging two unresolved classes must not ready anything, got %v", got)
	}
	if err := u.UnifyValue(b, ty.BaseData{Kind: ty.UnitType}); err != nil {
		t.Fatal(err)
	}
	got := u.ReadyOps()
	if len(got) != 2 {
		t.Fatalf("both queued ops must become ready, got %v", got)
	}
}

func TestUnifyResolvedWithUnresolvedReadiesTheUnresolvedQueue(t *testing.T) {
	u := NewUnificationTable(shallowCombine)
	a, b := u.NewVariable(), u.NewVariable()
	if err := u.UnifyValue(a, ty.BaseData{Kind: ty.IntType}); err != nil {
		t.Fatal(err)
	}
	u.BlockOn(b, 3)

	if err := u.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	got := u.ReadyOps()
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("op blocked on b must ready when b joins a resolved class, got %v", got)
	}
	if v, ok := u.Resolve(b); !ok || v.Kind != ty.IntType {
		t.Fatalf("b must resolve to int, got %v ok=%v", v, ok)
	}
}
