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

// PermLess states that permission A requires no more strictness than B: if
// A ends up classified as borrow or own, B must be at least that.
type PermLess struct {
	A, B  ty.Perm
	Cause hir.MetaIndex
}

// PermLessIf is a PermLess edge that only takes effect once Condition is
// known to be at-least-borrow.
type PermLessIf struct {
	Condition ty.Perm
	A, B      ty.Perm
	Cause     hir.MetaIndex
}

// PermFacts accumulates the ordering facts a full-inference session emits;
// kind inference consumes them as a batch after the body walk.
type PermFacts struct {
	Less   []PermLess
	LessIf []PermLessIf
}

func (f *PermFacts) AddLess(a, b ty.Perm, cause hir.MetaIndex) {
	f.Less = append(f.Less, PermLess{A: a, B: b, Cause: cause})
}

func (f *PermFacts) AddLessIf(cond, a, b ty.Perm, cause hir.MetaIndex) {
	f.LessIf = append(f.LessIf, PermLessIf{Condition: cond, A: a, B: b, Cause: cause})
}

// fullInference threads permission variables through the body walk. Every
// permission the family mints is a fresh inference variable (or the known
// mode the user wrote), and every typing rule that relates two types also
// emits ordering facts between their permissions.
type fullInference struct{}

func (fullInference) fresh(c *TypeChecker) ty.Perm {
	return c.tables.InferredPerm(c.newPermVar())
}

func (f fullInference) primitive(c *TypeChecker, kind ty.BaseKind) ty.Ty {
	return ty.Ty{Perm: f.fresh(c), Base: c.tables.KnownBase(ty.BaseData{Kind: kind})}
}

func (f fullInference) NewInferTy(c *TypeChecker) ty.Ty {
	return ty.Ty{Perm: f.fresh(c), Base: c.tables.InferredBase(c.unify.NewVariable())}
}

// EquateTypes requires equal strictness, expressed as ordering edges in
// both directions.
func (f fullInference) EquateTypes(c *TypeChecker, cause hir.MetaIndex, t1, t2 ty.Ty) {
	if t1.Perm != t2.Perm {
		c.facts.AddLess(t1.Perm, t2.Perm, cause)
		c.facts.AddLess(t2.Perm, t1.Perm, cause)
	}
	c.equateBases(cause, t1.Base, t2.Base)
}

func (f fullInference) BooleanType(c *TypeChecker) ty.Ty { return f.primitive(c, ty.BoolType) }
func (f fullInference) IntType(c *TypeChecker) ty.Ty     { return f.primitive(c, ty.IntType) }
func (f fullInference) UintType(c *TypeChecker) ty.Ty    { return f.primitive(c, ty.UintType) }
func (f fullInference) UnitType(c *TypeChecker) ty.Ty    { return f.primitive(c, ty.UnitType) }

// ErrorType carries the share permission: the sentinel should never force
// an owned or borrowed classification on anything it flows into.
func (f fullInference) ErrorType(c *TypeChecker) ty.Ty {
	return ty.Ty{
		Perm: c.tables.KnownPerm(ty.Share),
		Base: c.tables.KnownBase(ty.BaseData{Kind: ty.ErrorType}),
	}
}

// RequireAssignable bounds the place's strictness by the value's: storing
// into an owned place demands an owned value.
func (f fullInference) RequireAssignable(c *TypeChecker, cause hir.MetaIndex, valueTy, placeTy ty.Ty) {
	if valueTy.Perm != placeTy.Perm {
		c.facts.AddLess(placeTy.Perm, valueTy.Perm, cause)
	}
	c.equateBases(cause, valueTy.Base, placeTy.Base)
}

// ApplyUserPerm gives the read the mode the user wrote, or a fresh
// permission when they wrote none; either way the read requires no more
// strictness than the place supplies.
func (f fullInference) ApplyUserPerm(c *TypeChecker, cause hir.MetaIndex, mode hir.Mode, placeTy ty.Ty) ty.Ty {
	var p ty.Perm
	switch mode {
	case hir.OwnedMode:
		p = c.tables.KnownPerm(ty.Own)
	case hir.SharedMode:
		p = c.tables.KnownPerm(ty.Share)
	case hir.BorrowedMode:
		p = c.tables.KnownPerm(ty.Borrow)
	default:
		p = f.fresh(c)
	}
	c.facts.AddLess(p, placeTy.Perm, cause)
	return ty.Ty{Perm: p, Base: placeTy.Base}
}

// ApplyOwnerPerm gives the projection a fresh permission that is bounded
// by the owner's, but only once the projection itself turns out to be
// at-least-borrow. A shared read of a field never forces its owner to be
// borrowed.
func (f fullInference) ApplyOwnerPerm(c *TypeChecker, cause hir.MetaIndex, ownerPerm ty.Perm, t ty.Ty) ty.Ty {
	p := f.fresh(c)
	c.facts.AddLessIf(p, p, ownerPerm, cause)
	return ty.Ty{Perm: p, Base: t.Base}
}

func (f fullInference) LeastUpperBound(c *TypeChecker, ifExpr hir.Expression, t1, t2 ty.Ty) ty.Ty {
	if c.isErrorBase(t1.Base) || c.isErrorBase(t2.Base) {
		return f.ErrorType(c)
	}
	if c.knownIncompatible(t1.Base, t2.Base) {
		c.results.RecordError(ifExpr.Meta())
		return f.ErrorType(c)
	}
	cause := ifExpr.Meta()
	c.equateBases(cause, t1.Base, t2.Base)
	// the merged value is no stricter than either arm supplies
	p := f.fresh(c)
	c.facts.AddLess(p, t1.Perm, cause)
	c.facts.AddLess(p, t2.Perm, cause)
	return ty.Ty{Perm: p, Base: t1.Base}
}

// ConstructionTy is owned: a fresh aggregate belongs to the constructing
// expression.
func (f fullInference) ConstructionTy(c *TypeChecker, base ty.Base) ty.Ty {
	return ty.Ty{Perm: c.tables.KnownPerm(ty.Own), Base: base}
}

func (f fullInference) Substitute(c *TypeChecker, generics ty.TyList, t ty.Ty) ty.Ty {
	s := &substitution{c: c, generics: generics, freshPerm: f.fresh}
	return ty.MapTy(s, t)
}
