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

// baseOnly erases permissions: every type it produces carries the known
// share permission, user-written modes are ignored, and only the base
// halves of types are ever constrained. Two checks of the same body, one
// base-only and one full, agree on every recorded base.
type baseOnly struct{}

func (baseOnly) share(c *TypeChecker) ty.Perm {
	return c.tables.KnownPerm(ty.Share)
}

func (f baseOnly) primitive(c *TypeChecker, kind ty.BaseKind) ty.Ty {
	return ty.Ty{Perm: f.share(c), Base: c.tables.KnownBase(ty.BaseData{Kind: kind})}
}

func (f baseOnly) NewInferTy(c *TypeChecker) ty.Ty {
	return ty.Ty{Perm: f.share(c), Base: c.tables.InferredBase(c.unify.NewVariable())}
}

func (f baseOnly) EquateTypes(c *TypeChecker, cause hir.MetaIndex, t1, t2 ty.Ty) {
	c.equateBases(cause, t1.Base, t2.Base)
}

func (f baseOnly) BooleanType(c *TypeChecker) ty.Ty { return f.primitive(c, ty.BoolType) }
func (f baseOnly) IntType(c *TypeChecker) ty.Ty     { return f.primitive(c, ty.IntType) }
func (f baseOnly) UintType(c *TypeChecker) ty.Ty    { return f.primitive(c, ty.UintType) }
func (f baseOnly) UnitType(c *TypeChecker) ty.Ty    { return f.primitive(c, ty.UnitType) }

func (f baseOnly) ErrorType(c *TypeChecker) ty.Ty { return f.primitive(c, ty.ErrorType) }

func (f baseOnly) RequireAssignable(c *TypeChecker, cause hir.MetaIndex, valueTy, placeTy ty.Ty) {
	c.equateBases(cause, valueTy.Base, placeTy.Base)
}

func (f baseOnly) ApplyUserPerm(c *TypeChecker, cause hir.MetaIndex, mode hir.Mode, placeTy ty.Ty) ty.Ty {
	return ty.Ty{Perm: f.share(c), Base: placeTy.Base}
}

func (f baseOnly) ApplyOwnerPerm(c *TypeChecker, cause hir.MetaIndex, ownerPerm ty.Perm, t ty.Ty) ty.Ty {
	return ty.Ty{Perm: f.share(c), Base: t.Base}
}

func (f baseOnly) LeastUpperBound(c *TypeChecker, ifExpr hir.Expression, t1, t2 ty.Ty) ty.Ty {
	if c.isErrorBase(t1.Base) || c.isErrorBase(t2.Base) {
		return f.ErrorType(c)
	}
	if c.knownIncompatible(t1.Base, t2.Base) {
		c.results.RecordError(ifExpr.Meta())
		return f.ErrorType(c)
	}
	c.equateBases(ifExpr.Meta(), t1.Base, t2.Base)
	return ty.Ty{Perm: f.share(c), Base: t1.Base}
}

func (f baseOnly) ConstructionTy(c *TypeChecker, base ty.Base) ty.Ty {
	return ty.Ty{Perm: f.share(c), Base: base}
}

func (f baseOnly) Substitute(c *TypeChecker, generics ty.TyList, t ty.Ty) ty.Ty {
	s := &substitution{c: c, generics: generics, freshPerm: f.share}
	return ty.MapTy(s, t)
}
