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
	"github.com/marlow-lang/typecheck/internal/util"
	"github.com/marlow-lang/typecheck/ty"
)

// InferPermKinds classifies every inferred permission as Own or Borrow by
// running the accumulated facts to a fixpoint. Two marks flow forward along
// the ordering edges:
//
//	borrow(p)        p needs at least a borrow of its referent
//	owned(p)         p needs full ownership
//
// Known Own permissions seed both marks, known Borrow seeds the first, and
// a perm-less edge from a marked permission marks its target. A conditional
// edge activates once its condition carries the borrow mark. Own wins where
// both marks land on a variable.
//
// Variables absent from the returned map carry neither mark: nothing in the
// body demanded more than a share, so share is what they get.
func InferPermKinds(tables *ty.Tables, facts *PermFacts) map[ty.PermVar]ty.PermKind {
	// vertices are interned perm indices; 0 is the unused NoPerm slot
	n := tables.NumPerms() + 1
	g := util.NewGraph(n)
	borrow := make([]bool, n)
	owned := make([]bool, n)
	conds := make([][]PermLessIf, n)

	var worklist []int
	markBorrow := func(v int) {
		if borrow[v] {
			return
		}
		borrow[v] = true
		worklist = append(worklist, v)
	}
	markOwned := func(v int) {
		if owned[v] {
			return
		}
		owned[v] = true
		worklist = append(worklist, v)
	}
	addEdge := func(from, to int) {
		if !g.AddEdge(from, to) {
			return
		}
		if borrow[from] {
			markBorrow(to)
		}
		if owned[from] {
			markOwned(to)
		}
	}

	for _, e := range facts.Less {
		g.AddEdge(int(e.A), int(e.B))
	}
	for _, e := range facts.LessIf {
		conds[e.Condition] = append(conds[e.Condition], e)
	}

	for i := 1; i < n; i++ {
		node := tables.UnternPerm(ty.Perm(i))
		if node.Tag != ty.KnownTag {
			continue
		}
		switch node.Kind {
		case ty.Own:
			markOwned(i)
			markBorrow(i)
		case ty.Borrow:
			markBorrow(i)
		}
	}

	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if borrow[v] {
			for _, e := range conds[v] {
				addEdge(int(e.A), int(e.B))
			}
			conds[v] = nil
		}
		for _, succ := range g.Succs(v) {
			if borrow[v] {
				markBorrow(succ)
			}
			if owned[v] {
				markOwned(succ)
			}
		}
	}

	kinds := make(map[ty.PermVar]ty.PermKind)
	for i := 1; i < n; i++ {
		node := tables.UnternPerm(ty.Perm(i))
		if node.Tag != ty.InferredTag {
			continue
		}
		switch {
		case owned[i]:
			kinds[node.Var] = ty.Own
		case borrow[i]:
			kinds[node.Var] = ty.Borrow
		}
	}
	return kinds
}
