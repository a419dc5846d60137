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

// ty defines the interned type values used throughout type checking.
//
// A type is a pair of a permission and a base (the type skeleton); each half
// is an interned key into a Tables instance. A permission or base is either
// Known (a concrete classification), Inferred (awaiting resolution of an
// inference variable), or a Placeholder (a rigid unknown standing for a
// generic parameter, scoped to a Universe). Bases additionally have a Bound
// form, used only in declaration signatures, which refers to one of the
// declaring item's generic parameters by index.
package ty

import (
	"github.com/marlow-lang/typecheck/hir"
)

// Universe is a nesting depth distinguishing the root scope from scopes
// introduced per generic item. Placeholders are only comparable within
// their universe, which prevents an item's type parameters from escaping.
type Universe uint32

// RootUniverse is the outermost universe.
const RootUniverse Universe = 0

// BoundVar is the index of a generic parameter within its declaring item.
type BoundVar uint32

// Placeholder is a rigid stand-in for a generic parameter.
type Placeholder struct {
	Universe Universe
	BoundVar BoundVar
}

// PermKind is a concrete permission classification.
type PermKind uint8

const (
	// Share is the implicit default permission.
	Share PermKind = iota
	Borrow
	Own
)

func (k PermKind) String() string {
	switch k {
	case Share:
		return "share"
	case Borrow:
		return "borrow"
	case Own:
		return "own"
	default:
		return "?"
	}
}

// InferVar identifies one base-type unification slot. Infer variables are
// allocated on demand during checking and are owned by the session's
// unification table.
type InferVar uint32

// PermVar identifies one permission variable, classified by kind inference.
type PermVar uint32

// Perm is an interned permission value.
type Perm uint32

// Base is an interned type skeleton.
type Base uint32

// Generics is an interned list of generic arguments. The zero value means
// the item takes no generic arguments.
type Generics uint32

const (
	NoPerm     Perm     = 0
	NoBase     Base     = 0
	NoGenerics Generics = 0
)

// Ty is a full type: a permission applied to a base.
type Ty struct {
	Perm Perm
	Base Base
}

// Tag discriminates the forms a Perm or Base value can take.
type Tag uint8

const (
	KnownTag Tag = 1 + iota
	InferredTag
	PlaceholderTag
	// BoundTag only appears in declaration signatures.
	BoundTag
)

// BaseKind discriminates known base skeletons. Placeholders are a kind of
// known base (they are rigid, and unify only with themselves), so that they
// can be carried as resolved values by the unification table.
type BaseKind uint8

const (
	BoolType BaseKind = 1 + iota
	IntType
	UintType
	UnitType
	// NamedType is a user-declared struct, possibly with generic arguments.
	NamedType
	// PlaceholderType is a rigid stand-in for a generic parameter of the
	// item being checked.
	PlaceholderType
	// ErrorType is the sentinel recorded when checking a node failed. It
	// equates with everything, so one failure does not cascade.
	ErrorType
)

func (k BaseKind) String() string {
	switch k {
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case UintType:
		return "uint"
	case UnitType:
		return "()"
	case NamedType:
		return "named"
	case PlaceholderType:
		return "placeholder"
	case ErrorType:
		return "{error}"
	default:
		return "?"
	}
}

// BaseData is the content of a known base.
type BaseData struct {
	Kind BaseKind
	// Entity and Generics are set for NamedType only.
	Entity   hir.Entity
	Generics Generics
	// Placeholder is set for PlaceholderType only.
	Placeholder Placeholder
}

// BaseNode is the interned content of a Base key.
type BaseNode struct {
	Tag   Tag
	Data  BaseData // KnownTag
	Var   InferVar // InferredTag
	Bound BoundVar // BoundTag
}

// PermNode is the interned content of a Perm key.
type PermNode struct {
	Tag         Tag
	Kind        PermKind // KnownTag
	Var         PermVar  // InferredTag
	Placeholder Placeholder
}
