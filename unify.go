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
	"github.com/marlow-lang/typecheck/ty"
)

// TypeMismatch is the failure produced when two known bases cannot be
// unified. A failing unification performs no mutation.
type TypeMismatch struct {
	Left, Right ty.BaseData
}

func (e *TypeMismatch) Error() string {
	return "Failed to unify " + e.Left.Kind.String() + " with " + e.Right.Kind.String()
}

// UnificationTable is a union-find over inference variables, with a
// resolved-value slot and a blocked-operation queue per equivalence class.
// It is exclusively owned by one type-check session.
//
// When two resolved classes meet, the caller-supplied combine function
// decides compatibility; it may recursively equate the generic arguments of
// the two values (possibly re-entering the table), but it must not mutate
// the classes being merged.
type UnificationTable struct {
	slots   []slot
	combine func(a, b ty.BaseData) error
	ready   []OpIndex
}

type slot struct {
	parent  ty.InferVar
	rank    uint8
	value   *ty.BaseData // set on root slots only
	blocked []OpIndex
}

func NewUnificationTable(combine func(a, b ty.BaseData) error) *UnificationTable {
	return &UnificationTable{combine: combine}
}

// NewVariable allocates a fresh unresolved inference variable.
func (u *UnificationTable) NewVariable() ty.InferVar {
	v := ty.InferVar(len(u.slots))
	u.slots = append(u.slots, slot{parent: v})
	return v
}

// NumVariables returns the number of variables allocated so far.
func (u *UnificationTable) NumVariables() int { return len(u.slots) }

// Find returns the representative of v's equivalence class, compressing the
// path walked.
func (u *UnificationTable) Find(v ty.InferVar) ty.InferVar {
	root := v
	for u.slots[root].parent != root {
		root = u.slots[root].parent
	}
	for u.slots[v].parent != root {
		v, u.slots[v].parent = u.slots[v].parent, root
	}
	return root
}

// Resolve returns the known value for v's class, if any.
func (u *UnificationTable) Resolve(v ty.InferVar) (ty.BaseData, bool) {
	if value := u.slots[u.Find(v)].value; value != nil {
		return *value, true
	}
	return ty.BaseData{}, false
}

// BlockOn registers op to be made ready once v's class resolves. If the
// class is already resolved, op is ready immediately.
func (u *UnificationTable) BlockOn(v ty.InferVar, op OpIndex) {
	root := u.Find(v)
	if u.slots[root].value != nil {
		u.ready = append(u.ready, op)
		return
	}
	u.slots[root].blocked = append(u.slots[root].blocked, op)
}

// ReadyOps removes and returns the operations unblocked by resolutions since
// the previous call, in the order their blocking variables resolved and,
// within one resolution, in registration order.
func (u *UnificationTable) ReadyOps() []OpIndex {
	ready := u.ready
	u.ready = nil
	return ready
}

// Unify merges the equivalence classes of a and b. If both classes carry
// known values, the values must be compatible; otherwise Unify fails with no
// mutation. A merge that resolves previously-unresolved variables moves
// their blocked operations to the ready queue.
func (u *UnificationTable) Unify(a, b ty.InferVar) error {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return nil
	}
	va, vb := u.slots[ra].value, u.slots[rb].value
	if va != nil && vb != nil {
		if err := u.combine(*va, *vb); err != nil {
			return err
		}
	}

	// union by rank
	if u.slots[ra].rank < u.slots[rb].rank {
		ra, rb = rb, ra
		va, vb = vb, va
	} else if u.slots[ra].rank == u.slots[rb].rank {
		u.slots[ra].rank++
	}
	u.slots[rb].parent = ra

	switch {
	case va != nil && vb == nil:
		// rb's variables just resolved
		u.ready = append(u.ready, u.slots[rb].blocked...)
		u.slots[rb].blocked = nil
	case va == nil && vb != nil:
		u.slots[ra].value = vb
		u.ready = append(u.ready, u.slots[ra].blocked...)
		u.slots[ra].blocked = nil
	case va == nil && vb == nil:
		// both still unresolved; carry the blocked queues forward
		u.slots[ra].blocked = append(u.slots[ra].blocked, u.slots[rb].blocked...)
		u.slots[rb].blocked = nil
	}
	return nil
}

// UnifyValue resolves v's class to the known value d. If the class is
// already resolved, d must be compatible with the existing value; otherwise
// UnifyValue fails with no mutation.
func (u *UnificationTable) UnifyValue(v ty.InferVar, d ty.BaseData) error {
	root := u.Find(v)
	if existing := u.slots[root].value; existing != nil {
		return u.combine(*existing, d)
	}
	u.slots[root].value = &d
	u.ready = append(u.ready, u.slots[root].blocked...)
	u.slots[root].blocked = nil
	return nil
}
