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

// substitution rewrites a declaration-family type for use inside the
// checked body: Bound bases become the supplied generic arguments, and
// default (NoPerm) permissions become whatever the family considers fresh.
type substitution struct {
	c        *TypeChecker
	generics ty.TyList
	// freshPerm supplies the permission for each default-permission
	// occurrence; one fresh value per occurrence.
	freshPerm func(c *TypeChecker) ty.Perm
}

var _ ty.Mapper = (*substitution)(nil)

func (s *substitution) Tables() *ty.Tables { return s.c.tables }

func (s *substitution) MapPerm(p ty.Perm) ty.Perm {
	if p == ty.NoPerm {
		return s.freshPerm(s.c)
	}
	return p
}

func (s *substitution) MapBase(b ty.Base) ty.Base {
	node := s.c.tables.UnternBase(b)
	switch node.Tag {
	case ty.BoundTag:
		if int(node.Bound) >= s.generics.Len() {
			panic("typecheck: bound variable out of range for substitution")
		}
		return s.generics.Get(int(node.Bound)).Base
	case ty.KnownTag:
		return s.c.tables.KnownBase(ty.MapBaseData(s, node.Data))
	default:
		return b
	}
}

// resolver rewrites inference variables to their final values when a
// session's results are frozen. Variables that were never resolved (e.g.
// because an earlier error left an operation permanently blocked) become
// the error sentinel rather than leaking unresolved variables to callers.
type resolver struct {
	c *TypeChecker
	// visiting guards against unifier-created cycles while values are
	// expanded.
	visiting map[ty.InferVar]bool
}

var _ ty.Mapper = (*resolver)(nil)

func newResolver(c *TypeChecker) *resolver {
	return &resolver{c: c, visiting: make(map[ty.InferVar]bool, 8)}
}

func (r *resolver) Tables() *ty.Tables { return r.c.tables }

func (r *resolver) MapPerm(p ty.Perm) ty.Perm { return p }

func (r *resolver) MapBase(b ty.Base) ty.Base {
	node := r.c.tables.UnternBase(b)
	switch node.Tag {
	case ty.InferredTag:
		root := r.c.unify.Find(node.Var)
		data, ok := r.c.unify.Resolve(root)
		if !ok || r.visiting[root] {
			return r.c.tables.KnownBase(ty.BaseData{Kind: ty.ErrorType})
		}
		r.visiting[root] = true
		mapped := r.c.tables.KnownBase(ty.MapBaseData(r, data))
		delete(r.visiting, root)
		return mapped
	case ty.KnownTag:
		return r.c.tables.KnownBase(ty.MapBaseData(r, node.Data))
	case ty.BoundTag:
		panic("typecheck: bound variable escaped into inference results")
	default:
		return b
	}
}
