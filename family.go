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

// Family is the capability set that parameterizes the checker: the same
// walk over a function body runs once with permissions erased (BaseOnly)
// and once with permission variables threaded through (FullInference). It
// is an explicit strategy object passed to the checker, not a base class.
type Family interface {
	// NewInferTy creates a type with fresh inference variables.
	NewInferTy(c *TypeChecker) ty.Ty

	// EquateTypes equates two types, recording an error at cause if they
	// are not equatable.
	EquateTypes(c *TypeChecker, cause hir.MetaIndex, t1, t2 ty.Ty)

	// Built-in primitive types:
	BooleanType(c *TypeChecker) ty.Ty
	IntType(c *TypeChecker) ty.Ty
	UintType(c *TypeChecker) ty.Ty
	UnitType(c *TypeChecker) ty.Ty

	// ErrorType is the sentinel substituted when a check fails, so one
	// failure does not cascade into spurious errors downstream.
	ErrorType(c *TypeChecker) ty.Ty

	// RequireAssignable constrains a value of type valueTy to be storable
	// into a place of type placeTy, recording an error at cause otherwise.
	RequireAssignable(c *TypeChecker, cause hir.MetaIndex, valueTy, placeTy ty.Ty)

	// ApplyUserPerm applies a permission written by the user to the type of
	// the place that was accessed.
	ApplyUserPerm(c *TypeChecker, cause hir.MetaIndex, mode hir.Mode, placeTy ty.Ty) ty.Ty

	// ApplyOwnerPerm adjusts the type of a value projected out of an owner
	// with the given permission (e.g. a field access).
	ApplyOwnerPerm(c *TypeChecker, cause hir.MetaIndex, ownerPerm ty.Perm, t ty.Ty) ty.Ty

	// LeastUpperBound computes the common type of two branch arms,
	// recording an error at the conditional expression if none exists.
	LeastUpperBound(c *TypeChecker, ifExpr hir.Expression, t1, t2 ty.Ty) ty.Ty

	// ConstructionTy is the type of a freshly constructed aggregate with
	// the given base.
	ConstructionTy(c *TypeChecker, base ty.Base) ty.Ty

	// Substitute replaces Bound bases in a declaration-family type with the
	// given generic arguments, and default permissions with this family's
	// fresh permission.
	Substitute(c *TypeChecker, generics ty.TyList, t ty.Ty) ty.Ty
}

// BaseOnly checks base types only, with all permissions erased to the known
// share constant. It backs BaseTypeCheck.
func BaseOnly() Family { return baseOnly{} }

// FullInference threads permission variables through the walk and
// accumulates the ordering facts consumed by kind inference. It backs
// FullTypeCheck.
func FullInference() Family { return fullInference{} }
