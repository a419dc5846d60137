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
	"github.com/benbjohnson/immutable"

	"github.com/marlow-lang/typecheck/hir"
	"github.com/marlow-lang/typecheck/ty"
)

// Error records that a check failed at the given node. Rendering a
// diagnostic from it is the surrounding driver's concern.
type Error struct {
	Location hir.MetaIndex
}

type metaComparer struct{}

func (metaComparer) Compare(a, b interface{}) int {
	return a.(hir.MetaIndex).Compare(b.(hir.MetaIndex))
}

var emptyTypes = immutable.NewSortedMap(metaComparer{})

// Results holds everything one type-check session produced: the type
// assigned to every reachable node, the entities that identifier occurrences
// resolved to, and the errors encountered, in the order they were found.
//
// The node→type map is set-once: a node's type is recorded exactly once, and
// recording it again is a programmer error, not a silent overwrite. Once the
// session completes, a Results is immutable.
type Results struct {
	types    *immutable.SortedMap
	entities map[hir.Identifier]hir.Entity
	errors   []Error
}

func NewResults() *Results {
	return &Results{
		types:    emptyTypes,
		entities: make(map[hir.Identifier]hir.Entity, 8),
	}
}

// RecordTy records the type assigned to a node.
func (r *Results) RecordTy(index hir.MetaIndex, t ty.Ty) {
	if _, ok := r.types.Get(index); ok {
		panic("typecheck: type already recorded for node")
	}
	r.types = r.types.Set(index, t)
}

// RecordEntity records the entity an identifier occurrence resolved to
// (e.g. the field named by `foo.bar`).
func (r *Results) RecordEntity(index hir.Identifier, entity hir.Entity) {
	r.entities[index] = entity
}

// RecordError records that an error occurred at the given node.
func (r *Results) RecordError(index hir.MetaIndex) {
	r.errors = append(r.errors, Error{Location: index})
}

// Ty returns the type recorded for a node. Looking up a node that was never
// part of the checked body is a caller error and panics.
func (r *Results) Ty(index hir.MetaIndex) ty.Ty {
	v, ok := r.types.Get(index)
	if !ok {
		panic("typecheck: no type recorded for node")
	}
	return v.(ty.Ty)
}

// HasTy reports whether a type was recorded for a node.
func (r *Results) HasTy(index hir.MetaIndex) bool {
	_, ok := r.types.Get(index)
	return ok
}

// Entity returns the entity recorded for an identifier occurrence.
func (r *Results) Entity(index hir.Identifier) (hir.Entity, bool) {
	e, ok := r.entities[index]
	return e, ok
}

// Errors returns the recorded errors in discovery order. The returned slice
// must not be modified.
func (r *Results) Errors() []Error { return r.errors }

// RangeTys iterates over recorded node types in node order.
// If f returns false, iteration will be stopped.
func (r *Results) RangeTys(f func(hir.MetaIndex, ty.Ty) bool) {
	iter := r.types.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(hir.MetaIndex), v.(ty.Ty)) {
			return
		}
	}
}

// NumTys returns the number of nodes with a recorded type.
func (r *Results) NumTys() int { return r.types.Len() }
