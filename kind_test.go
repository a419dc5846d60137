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

	"github.com/marlow-lang/typecheck/hir"
	"github.com/marlow-lang/typecheck/ty"
)

func TestOwnPropagatesAlongChain(t *testing.T) {
	tables := ty.NewTables()
	own := tables.KnownPerm(ty.Own)
	a := tables.InferredPerm(0)
	b := tables.InferredPerm(1)

	var facts PermFacts
	facts.AddLess(own, a, hir.MetaIndex{})
	facts.AddLess(a, b, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if kinds[0] != ty.Own {
		t.Fatalf("variable 0 = %v, want own", kinds[0])
	}
	if kinds[1] != ty.Own {
		t.Fatalf("variable 1 = %v, want own", kinds[1])
	}
}

func TestBorrowPropagatesAndOwnWins(t *testing.T) {
	tables := ty.NewTables()
	borrow := tables.KnownPerm(ty.Borrow)
	own := tables.KnownPerm(ty.Own)
	a := tables.InferredPerm(0)
	b := tables.InferredPerm(1)

	var facts PermFacts
	facts.AddLess(borrow, a, hir.MetaIndex{})
	facts.AddLess(borrow, b, hir.MetaIndex{})
	facts.AddLess(own, b, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if kinds[0] != ty.Borrow {
		t.Fatalf("variable 0 = %v, want borrow", kinds[0])
	}
	if kinds[1] != ty.Own {
		t.Fatalf("variable 1 = %v, want own (own beats borrow)", kinds[1])
	}
}

func TestUnconstrainedVariableDefaultsToShare(t *testing.T) {
	tables := ty.NewTables()
	a := tables.InferredPerm(0)
	b := tables.InferredPerm(1)

	var facts PermFacts
	facts.AddLess(a, b, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if len(kinds) != 0 {
		t.Fatalf("no ownership demanded anywhere, want empty classification, got %v", kinds)
	}
}

func TestConditionalEdgeStaysDormantWithoutBorrowGuard(t *testing.T) {
	tables := ty.NewTables()
	own := tables.KnownPerm(ty.Own)
	guard := tables.InferredPerm(0)
	a := tables.InferredPerm(1)
	b := tables.InferredPerm(2)

	var facts PermFacts
	facts.AddLess(own, a, hir.MetaIndex{})
	facts.AddLessIf(guard, a, b, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if kinds[1] != ty.Own {
		t.Fatalf("variable 1 = %v, want own", kinds[1])
	}
	if _, ok := kinds[2]; ok {
		t.Fatalf("guard never became borrow, so the conditional edge must stay dormant; got %v", kinds[2])
	}
}

func TestConditionalEdgeActivatesOnBorrowGuard(t *testing.T) {
	tables := ty.NewTables()
	own := tables.KnownPerm(ty.Own)
	borrow := tables.KnownPerm(ty.Borrow)
	guard := tables.InferredPerm(0)
	a := tables.InferredPerm(1)
	b := tables.InferredPerm(2)

	var facts PermFacts
	facts.AddLess(own, a, hir.MetaIndex{})
	facts.AddLessIf(guard, a, b, hir.MetaIndex{})
	facts.AddLess(borrow, guard, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if kinds[0] != ty.Borrow {
		t.Fatalf("guard = %v, want borrow", kinds[0])
	}
	if kinds[2] != ty.Own {
		t.Fatalf("variable 2 = %v, want own once the edge activated", kinds[2])
	}
}

// A projection's own permission guards its edge to the owner: if the
// projection only ends up shared, the owner is never forced to borrow.
func TestSelfGuardedProjectionEdge(t *testing.T) {
	tables := ty.NewTables()
	own := tables.KnownPerm(ty.Own)
	proj := tables.InferredPerm(0)
	owner := tables.InferredPerm(1)

	var facts PermFacts
	facts.AddLessIf(proj, proj, owner, hir.MetaIndex{})

	kinds := InferPermKinds(tables, &facts)
	if len(kinds) != 0 {
		t.Fatalf("shared projection must leave the owner shared, got %v", kinds)
	}

	// an owned read of the projection flips both
	facts.AddLess(own, proj, hir.MetaIndex{})
	kinds = InferPermKinds(tables, &facts)
	if kinds[0] != ty.Own {
		t.Fatalf("projection = %v, want own", kinds[0])
	}
	if kinds[1] != ty.Own {
		t.Fatalf("owner = %v, want own through the activated edge", kinds[1])
	}
}

func TestKindInferenceIsDeterministic(t *testing.T) {
	tables := ty.NewTables()
	own := tables.KnownPerm(ty.Own)
	borrow := tables.KnownPerm(ty.Borrow)
	vars := make([]ty.Perm, 6)
	for i := range vars {
		vars[i] = tables.InferredPerm(ty.PermVar(i))
	}

	var facts PermFacts
	facts.AddLess(own, vars[0], hir.MetaIndex{})
	facts.AddLess(vars[0], vars[1], hir.MetaIndex{})
	facts.AddLess(vars[1], vars[2], hir.MetaIndex{})
	facts.AddLess(borrow, vars[3], hir.MetaIndex{})
	facts.AddLessIf(vars[3], vars[2], vars[4], hir.MetaIndex{})
	// duplicate edges must be harmless
	facts.AddLess(vars[0], vars[1], hir.MetaIndex{})

	first := InferPermKinds(tables, &facts)
	second := InferPermKinds(tables, &facts)
	if len(first) != len(second) {
		t.Fatalf("reruns disagree: %v vs %v", first, second)
	}
	for v, k := range first {
		if second[v] != k {
			t.Fatalf("reruns disagree on variable %d: %v vs %v", v, k, second[v])
		}
	}
	for i, want := range map[int]ty.PermKind{0: ty.Own, 1: ty.Own, 2: ty.Own, 3: ty.Borrow, 4: ty.Own} {
		if first[ty.PermVar(i)] != want {
			t.Fatalf("variable %d = %v, want %v", i, first[ty.PermVar(i)], want)
		}
	}
	if _, ok := first[5]; ok {
		t.Fatal("variable 5 has no constraints and must stay share")
	}
}
