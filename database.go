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
	"errors"

	"github.com/marlow-lang/typecheck/hir"
	"github.com/marlow-lang/typecheck/ty"
)

// ErrReported marks a query whose answer could not be produced because an
// earlier compiler stage already diagnosed a problem there. The checker
// propagates the error-sentinel type for such nodes without emitting a
// duplicate diagnostic.
var ErrReported = errors.New("error already reported")

// Signature is the declaration-family signature of a function or method.
// Its types may contain Bound bases referring to the item's generic
// parameters, and permissions left as NoPerm to mean "default".
type Signature struct {
	// NumGenerics is the number of generic parameters the item declares in
	// addition to those of its parent (for methods, the owning struct's
	// generics come first in the combined substitution).
	NumGenerics int
	// Inputs are the parameter types. For methods, Inputs[0] is the
	// receiver.
	Inputs []ty.Ty
	Output ty.Ty
}

// MemberKind selects which namespace of an owner entity to search.
type MemberKind uint8

const (
	FieldMember MemberKind = 1 + iota
	MethodMember
)

// Database is the set of external collaborators the checker consumes:
// lowered function bodies, declaration signatures resolvable by Entity, and
// the intern tables shared across the compilation. In the full compiler it
// is backed by the incremental memoized query layer; tests provide a fixed
// in-memory implementation.
//
// All answers must be pure functions of the entity: BaseTypeCheck is safe to
// memoize by Entity identity.
type Database interface {
	Tables() *ty.Tables
	Entities() *hir.EntityTables

	// FnBody returns the lowered body of a function entity.
	FnBody(entity hir.Entity) *hir.FnBody

	// Signature returns the declaration signature of a function or method
	// entity, or ErrReported if an earlier stage failed on it.
	Signature(entity hir.Entity) (Signature, error)

	// DeclTy returns the declaration type of a field or other directly
	// named item, or ErrReported. Field types may contain Bound bases
	// referring to the owning struct's generics.
	DeclTy(entity hir.Entity) (ty.Ty, error)

	// NumGenerics returns the number of generic parameters a struct entity
	// declares.
	NumGenerics(entity hir.Entity) int

	// Member resolves a field or method name within an owner entity.
	Member(owner hir.Entity, kind MemberKind, name string) (hir.Entity, bool)
}
