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

// UniverseBinder records what introduced a universe.
type UniverseBinder struct {
	// FromItem is the generic item whose parameters the universe scopes,
	// or NoEntity for the root universe.
	FromItem hir.Entity
}

// TypeChecker is one type-check session: it assigns a type to every
// expression, place, and variable of one function body. A session owns its
// unification table and operation arena exclusively; distinct function
// bodies may be checked in parallel by the surrounding build layer, but a
// single session is strictly single-threaded.
type TypeChecker struct {
	db     Database
	tables *ty.Tables
	family Family
	entity hir.Entity
	body   *hir.FnBody

	unify *UnificationTable
	ops   opsArena

	results *Results
	facts   PermFacts

	universes []UniverseBinder
	permVars  uint32
	varTys    map[hir.Variable]ty.Ty

	// currentCause is the node charged with errors raised by in-flight
	// unification; combineData reads it when it recursively equates
	// generic arguments. Valid because a session is single-threaded.
	currentCause hir.MetaIndex
}

func newTypeChecker(db Database, family Family, entity hir.Entity) *TypeChecker {
	c := &TypeChecker{
		db:        db,
		tables:    db.Tables(),
		family:    family,
		entity:    entity,
		results:   NewResults(),
		universes: []UniverseBinder{{FromItem: hir.NoEntity}},
		varTys:    make(map[hir.Variable]ty.Ty, 8),
	}
	c.unify = NewUnificationTable(func(a, b ty.BaseData) error {
		return c.combineData(a, b)
	})
	return c
}

// BaseTypeCheck computes the base type information for a function body,
// excluding permissions. The result is a pure function of the entity's body
// and its dependencies' signatures, and is safe to memoize by Entity.
func BaseTypeCheck(db Database, entity hir.Entity) *Results {
	c := newTypeChecker(db, BaseOnly(), entity)
	c.checkFnBody()
	return c.results
}

// FullTypeCheck computes type information with permission inference: along
// with the per-node types, it classifies every permission variable the
// session created as Own or Borrow. Variables absent from the map are
// Share, the implicit default.
func FullTypeCheck(db Database, entity hir.Entity) (*Results, map[ty.PermVar]ty.PermKind) {
	c := newTypeChecker(db, FullInference(), entity)
	c.checkFnBody()
	return c.results, InferPermKinds(c.tables, &c.facts)
}

func (c *TypeChecker) checkFnBody() {
	c.body = c.db.FnBody(c.entity)

	returnTy := c.family.ErrorType(c)
	sig, err := c.db.Signature(c.entity)
	if err != nil {
		// an earlier stage failed on the signature; parameters become the
		// sentinel and no duplicate error is recorded
		for _, v := range c.body.Arguments {
			c.assignVariableTy(v, c.family.ErrorType(c))
		}
	} else {
		// the checked item's own generics are rigid within its body
		placeholders := c.placeholdersFor(c.entity, sig.NumGenerics)
		for i, v := range c.body.Arguments {
			t := c.family.ErrorType(c)
			if i < len(sig.Inputs) {
				t = c.family.Substitute(c, placeholders, sig.Inputs[i])
			}
			c.assignVariableTy(v, t)
		}
		returnTy = c.family.Substitute(c, placeholders, sig.Output)
	}

	rootTy := c.checkExpression(c.body.Root)
	c.family.RequireAssignable(c, c.body.Root.Meta(), rootTy, returnTy)

	c.drainOps()
	c.freezeResults()
}

// placeholdersFor allocates a universe for an item's generic parameters and
// returns the placeholder types standing for them.
func (c *TypeChecker) placeholdersFor(entity hir.Entity, count int) ty.TyList {
	if count == 0 {
		return ty.EmptyTyList
	}
	u := ty.Universe(len(c.universes))
	c.universes = append(c.universes, UniverseBinder{FromItem: entity})
	b := ty.NewTyListBuilder()
	for i := 0; i < count; i++ {
		p := ty.Placeholder{Universe: u, BoundVar: ty.BoundVar(i)}
		b.Append(ty.Ty{Perm: c.tables.PlaceholderPerm(p), Base: c.tables.PlaceholderBase(p)})
	}
	return b.Build()
}

func (c *TypeChecker) assignVariableTy(v hir.Variable, t ty.Ty) {
	c.varTys[v] = t
	c.results.RecordTy(v.Meta(), t)
}

// freezeResults substitutes resolved values for inference variables in every
// recorded type. Variables left unresolved at session end (their operations
// were permanently blocked by an earlier failure) freeze to the error
// sentinel, so every reachable node has some type.
func (c *TypeChecker) freezeResults() {
	r := newResolver(c)
	final := NewResults()
	c.results.RangeTys(func(m hir.MetaIndex, t ty.Ty) bool {
		final.RecordTy(m, ty.MapTy(r, t))
		return true
	})
	final.entities = c.results.entities
	final.errors = c.results.errors
	c.results = final
}

func (c *TypeChecker) checkExpression(e hir.Expression) ty.Ty {
	t := c.computeExpressionTy(e)
	c.results.RecordTy(e.Meta(), t)
	return t
}

func (c *TypeChecker) computeExpressionTy(e hir.Expression) ty.Ty {
	switch d := c.body.Expression(e).(type) {
	case hir.UnitData:
		return c.family.UnitType(c)

	case hir.LiteralData:
		switch d.Kind {
		case hir.BoolLiteral:
			return c.family.BooleanType(c)
		case hir.IntLiteral:
			return c.family.IntType(c)
		case hir.UintLiteral:
			return c.family.UintType(c)
		}
		panic("typecheck: unexpected literal kind")

	case hir.SequenceData:
		c.checkExpression(d.First)
		return c.checkExpression(d.Second)

	case hir.LetData:
		var varTy ty.Ty
		if d.Initializer != hir.NoExpression {
			varTy = c.checkExpression(d.Initializer)
		} else {
			varTy = c.family.NewInferTy(c)
		}
		c.assignVariableTy(d.Variable, varTy)
		return c.checkExpression(d.Body)

	case hir.ReadData:
		placeTy := c.checkPlace(d.Place)
		return c.family.ApplyUserPerm(c, e.Meta(), d.Mode, placeTy)

	case hir.AssignmentData:
		placeTy := c.checkPlace(d.Place)
		valueTy := c.checkExpression(d.Value)
		c.family.RequireAssignable(c, d.Value.Meta(), valueTy, placeTy)
		return c.family.UnitType(c)

	case hir.IfData:
		condTy := c.checkExpression(d.Condition)
		c.family.EquateTypes(c, d.Condition.Meta(), condTy, c.family.BooleanType(c))
		trueTy := c.checkExpression(d.IfTrue)
		falseTy := c.checkExpression(d.IfFalse)
		return c.family.LeastUpperBound(c, e, trueTy, falseTy)

	case hir.CallData:
		return c.checkCall(e, d)

	case hir.MethodCallData:
		return c.checkMethodCall(e, d)

	case hir.AggregateData:
		return c.checkAggregate(e, d)

	case hir.ErrorData:
		// already reported upstream
		return c.family.ErrorType(c)
	}
	panic("typecheck: unexpected expression kind")
}

func (c *TypeChecker) checkCall(e hir.Expression, d hir.CallData) ty.Ty {
	argTys := make([]ty.Ty, len(d.Arguments))
	for i, a := range d.Arguments {
		argTys[i] = c.checkExpression(a)
	}
	sig, err := c.db.Signature(d.Function)
	if err != nil {
		return c.family.ErrorType(c)
	}
	if len(argTys) != len(sig.Inputs) {
		c.results.RecordError(e.Meta())
		return c.family.ErrorType(c)
	}
	// a callee's generics are not rigid at the call site; fresh inference
	// variables let each call pick its own arguments
	generics := c.freshGenerics(sig.NumGenerics)
	for i, argTy := range argTys {
		input := c.family.Substitute(c, generics, sig.Inputs[i])
		c.family.RequireAssignable(c, d.Arguments[i].Meta(), argTy, input)
	}
	return c.family.Substitute(c, generics, sig.Output)
}

func (c *TypeChecker) freshGenerics(count int) ty.TyList {
	if count == 0 {
		return ty.EmptyTyList
	}
	b := ty.NewTyListBuilder()
	for i := 0; i < count; i++ {
		b.Append(c.family.NewInferTy(c))
	}
	return b.Build()
}

func (c *TypeChecker) checkMethodCall(e hir.Expression, d hir.MethodCallData) ty.Ty {
	ownerTy := c.checkPlace(d.Owner)
	argTys := make([]ty.Ty, len(d.Arguments)+1)
	argTys[0] = ownerTy
	for i, a := range d.Arguments {
		argTys[i+1] = c.checkExpression(a)
	}

	node := c.tables.UnternBase(ownerTy.Base)
	switch node.Tag {
	case ty.KnownTag:
		return c.finishMethodCall(e, ownerTy.Perm, node.Data, d.Method, argTys)
	case ty.InferredTag:
		if data, ok := c.unify.Resolve(node.Var); ok {
			return c.finishMethodCall(e, ownerTy.Perm, data, d.Method, argTys)
		}
		result := c.family.NewInferTy(c)
		c.suspend(&opMethodCall{
			expr:      e,
			ownerPerm: ownerTy.Perm,
			ownerVar:  node.Var,
			method:    d.Method,
			argTys:    argTys,
			result:    result,
		}, node.Var)
		return result
	}
	panic("typecheck: bound base in method owner")
}

func (c *TypeChecker) finishMethodCall(e hir.Expression, ownerPerm ty.Perm, owner ty.BaseData, method hir.Identifier, argTys []ty.Ty) ty.Ty {
	switch owner.Kind {
	case ty.ErrorType:
		return c.family.ErrorType(c)
	case ty.NamedType:
	default:
		c.results.RecordError(method.Meta())
		return c.family.ErrorType(c)
	}
	name := c.body.Identifier(method).Text
	member, ok := c.db.Member(owner.Entity, MethodMember, name)
	if !ok {
		c.results.RecordError(method.Meta())
		return c.family.ErrorType(c)
	}
	c.results.RecordEntity(method, member)
	sig, err := c.db.Signature(member)
	if err != nil {
		return c.family.ErrorType(c)
	}
	if len(argTys) != len(sig.Inputs) {
		c.results.RecordError(e.Meta())
		return c.family.ErrorType(c)
	}
	// the owning struct's generic arguments come first in the combined
	// substitution, then the method's own (fresh at the call site)
	generics := c.tables.UnternGenerics(owner.Generics)
	if sig.NumGenerics > 0 {
		b := generics.Builder()
		for i := 0; i < sig.NumGenerics; i++ {
			b.Append(c.family.NewInferTy(c))
		}
		generics = b.Build()
	}
	d := c.body.Expression(e).(hir.MethodCallData)
	receiver := c.family.Substitute(c, generics, sig.Inputs[0])
	c.family.RequireAssignable(c, e.Meta(), argTys[0], receiver)
	for i, a := range d.Arguments {
		input := c.family.Substitute(c, generics, sig.Inputs[i+1])
		c.family.RequireAssignable(c, a.Meta(), argTys[i+1], input)
	}
	return c.family.Substitute(c, generics, sig.Output)
}

func (c *TypeChecker) checkAggregate(e hir.Expression, d hir.AggregateData) ty.Ty {
	generics := c.freshGenerics(c.db.NumGenerics(d.Entity))
	base := c.tables.KnownBase(ty.BaseData{
		Kind:     ty.NamedType,
		Entity:   d.Entity,
		Generics: c.tables.InternGenerics(generics),
	})
	for _, f := range d.Fields {
		valueTy := c.checkExpression(f.Expression)
		name := c.body.Identifier(f.Identifier).Text
		member, ok := c.db.Member(d.Entity, FieldMember, name)
		if !ok {
			c.results.RecordError(f.Identifier.Meta())
			continue
		}
		c.results.RecordEntity(f.Identifier, member)
		decl, err := c.db.DeclTy(member)
		if err != nil {
			continue // already reported
		}
		fieldTy := c.family.Substitute(c, generics, decl)
		c.family.RequireAssignable(c, f.Expression.Meta(), valueTy, fieldTy)
	}
	return c.family.ConstructionTy(c, base)
}

func (c *TypeChecker) checkPlace(p hir.Place) ty.Ty {
	t := c.computePlaceTy(p)
	c.results.RecordTy(p.Meta(), t)
	return t
}

func (c *TypeChecker) computePlaceTy(p hir.Place) ty.Ty {
	switch d := c.body.Place(p).(type) {
	case hir.VariablePlace:
		t, ok := c.varTys[d.Variable]
		if !ok {
			panic("typecheck: place refers to unbound variable")
		}
		return t

	case hir.EntityPlace:
		decl, err := c.db.DeclTy(d.Entity)
		if err != nil {
			return c.family.ErrorType(c)
		}
		return c.family.Substitute(c, ty.EmptyTyList, decl)

	case hir.TemporaryPlace:
		return c.checkExpression(d.Expression)

	case hir.FieldPlace:
		ownerTy := c.checkPlace(d.Owner)
		node := c.tables.UnternBase(ownerTy.Base)
		switch node.Tag {
		case ty.KnownTag:
			return c.finishFieldProjection(p, ownerTy.Perm, node.Data, d.Name)
		case ty.InferredTag:
			if data, ok := c.unify.Resolve(node.Var); ok {
				return c.finishFieldProjection(p, ownerTy.Perm, data, d.Name)
			}
			result := c.family.NewInferTy(c)
			c.suspend(&opFieldProjection{
				place:     p,
				ownerPerm: ownerTy.Perm,
				ownerVar:  node.Var,
				name:      d.Name,
				result:    result,
			}, node.Var)
			return result
		}
		panic("typecheck: bound base in projection owner")
	}
	panic("typecheck: unexpected place kind")
}

func (c *TypeChecker) finishFieldProjection(p hir.Place, ownerPerm ty.Perm, owner ty.BaseData, name hir.Identifier) ty.Ty {
	switch owner.Kind {
	case ty.ErrorType:
		return c.family.ErrorType(c)
	case ty.NamedType:
	default:
		c.results.RecordError(name.Meta())
		return c.family.ErrorType(c)
	}
	text := c.body.Identifier(name).Text
	member, ok := c.db.Member(owner.Entity, FieldMember, text)
	if !ok {
		c.results.RecordError(name.Meta())
		return c.family.ErrorType(c)
	}
	c.results.RecordEntity(name, member)
	decl, err := c.db.DeclTy(member)
	if err != nil {
		return c.family.ErrorType(c)
	}
	fieldTy := c.family.Substitute(c, c.tables.UnternGenerics(owner.Generics), decl)
	return c.family.ApplyOwnerPerm(c, p.Meta(), ownerPerm, fieldTy)
}

// equateBases equates the base halves of two types. Unresolved variables
// are merged in the unification table; failures are recorded at cause.
func (c *TypeChecker) equateBases(cause hir.MetaIndex, a, b ty.Base) {
	if a == b {
		return
	}
	na, nb := c.tables.UnternBase(a), c.tables.UnternBase(b)
	prevCause := c.currentCause
	c.currentCause = cause
	defer func() { c.currentCause = prevCause }()

	var err error
	switch {
	case na.Tag == ty.KnownTag && nb.Tag == ty.KnownTag:
		err = c.combineData(na.Data, nb.Data)
	case na.Tag == ty.InferredTag && nb.Tag == ty.InferredTag:
		err = c.unify.Unify(na.Var, nb.Var)
	case na.Tag == ty.InferredTag:
		err = c.unify.UnifyValue(na.Var, nb.Data)
	case nb.Tag == ty.InferredTag:
		err = c.unify.UnifyValue(nb.Var, na.Data)
	default:
		panic("typecheck: bound base reached the unifier")
	}
	if err != nil {
		c.results.RecordError(cause)
	}
}

// combineData is the unification table's compatibility check for two known
// values: shallow structure must match, and generic arguments are equated
// pairwise (which may merge further classes or ready more operations). The
// error sentinel is compatible with everything.
func (c *TypeChecker) combineData(a, b ty.BaseData) error {
	if a.Kind == ty.ErrorType || b.Kind == ty.ErrorType {
		return nil
	}
	if a.Kind != b.Kind {
		return &TypeMismatch{a, b}
	}
	switch a.Kind {
	case ty.PlaceholderType:
		// placeholders are rigid: only identical within one universe
		if a.Placeholder != b.Placeholder {
			return &TypeMismatch{a, b}
		}
	case ty.NamedType:
		if a.Entity != b.Entity {
			return &TypeMismatch{a, b}
		}
		ga, gb := c.tables.UnternGenerics(a.Generics), c.tables.UnternGenerics(b.Generics)
		if ga.Len() != gb.Len() {
			return &TypeMismatch{a, b}
		}
		for i := 0; i < ga.Len(); i++ {
			c.family.EquateTypes(c, c.currentCause, ga.Get(i), gb.Get(i))
		}
	}
	return nil
}

// knownIncompatible reports whether both bases are known and can never be
// equated. Used to detect a missing least-upper-bound synchronously.
func (c *TypeChecker) knownIncompatible(a, b ty.Base) bool {
	na, nb := c.tables.UnternBase(a), c.tables.UnternBase(b)
	if na.Tag != ty.KnownTag || nb.Tag != ty.KnownTag {
		return false
	}
	da, db := na.Data, nb.Data
	if da.Kind == ty.ErrorType || db.Kind == ty.ErrorType {
		return false
	}
	if da.Kind != db.Kind {
		return true
	}
	switch da.Kind {
	case ty.PlaceholderType:
		return da.Placeholder != db.Placeholder
	case ty.NamedType:
		return da.Entity != db.Entity ||
			c.tables.UnternGenerics(da.Generics).Len() != c.tables.UnternGenerics(db.Generics).Len()
	}
	return false
}

func (c *TypeChecker) isErrorBase(b ty.Base) bool {
	n := c.tables.UnternBase(b)
	return n.Tag == ty.KnownTag && n.Data.Kind == ty.ErrorType
}

func (c *TypeChecker) newPermVar() ty.PermVar {
	v := ty.PermVar(c.permVars)
	c.permVars++
	return v
}
