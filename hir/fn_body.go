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

// hir defines the lowered, desugared representation of function bodies
// consumed by the type checker, along with interned Entity identifiers for
// declared items.
//
// A FnBody is a set of append-only tables addressed by typed indices. All
// indices are 1-based; the zero value of every index type means "absent".
// Bodies are built once, during lowering, and are immutable afterwards.
package hir

// Expression is the index of one expression within a FnBody.
type Expression uint32

// Place is the index of one place (assignable location) within a FnBody.
type Place uint32

// Variable is the index of one local variable or parameter within a FnBody.
type Variable uint32

// Identifier is the index of one identifier occurrence within a FnBody.
type Identifier uint32

const (
	NoExpression Expression = 0
	NoPlace      Place      = 0
	NoVariable   Variable   = 0
	NoIdentifier Identifier = 0
)

// MetaKind tags which table a MetaIndex points into.
type MetaKind uint8

const (
	ExpressionMeta MetaKind = 1 + iota
	PlaceMeta
	VariableMeta
	IdentifierMeta
)

// MetaIndex identifies any node of a FnBody, across all tables. It is used
// as the key for recorded types and error locations.
type MetaIndex struct {
	Kind  MetaKind
	Index uint32
}

func (e Expression) Meta() MetaIndex { return MetaIndex{ExpressionMeta, uint32(e)} }
func (p Place) Meta() MetaIndex      { return MetaIndex{PlaceMeta, uint32(p)} }
func (v Variable) Meta() MetaIndex   { return MetaIndex{VariableMeta, uint32(v)} }
func (i Identifier) Meta() MetaIndex { return MetaIndex{IdentifierMeta, uint32(i)} }

// Compare orders meta-indices by table, then by index. The ordering is used
// for deterministic iteration over recorded results.
func (m MetaIndex) Compare(other MetaIndex) int {
	switch {
	case m.Kind != other.Kind:
		if m.Kind < other.Kind {
			return -1
		}
		return 1
	case m.Index < other.Index:
		return -1
	case m.Index > other.Index:
		return 1
	default:
		return 0
	}
}

// Mode is a permission written by the user on a place access.
type Mode uint8

const (
	// DefaultMode means no permission was written; the checker picks one.
	DefaultMode Mode = iota
	OwnedMode
	SharedMode
	BorrowedMode
)

func (m Mode) String() string {
	switch m {
	case OwnedMode:
		return "owned"
	case SharedMode:
		return "shared"
	case BorrowedMode:
		return "borrowed"
	default:
		return ""
	}
}

// LiteralKind distinguishes literal expressions.
type LiteralKind uint8

const (
	BoolLiteral LiteralKind = 1 + iota
	IntLiteral
	UintLiteral
)

// ExpressionData is the content of one expression node.
type ExpressionData interface{ expressionData() }

var (
	_ ExpressionData = UnitData{}
	_ ExpressionData = LiteralData{}
	_ ExpressionData = SequenceData{}
	_ ExpressionData = LetData{}
	_ ExpressionData = ReadData{}
	_ ExpressionData = AssignmentData{}
	_ ExpressionData = IfData{}
	_ ExpressionData = CallData{}
	_ ExpressionData = MethodCallData{}
	_ ExpressionData = AggregateData{}
	_ ExpressionData = ErrorData{}
)

// UnitData is the `()` expression.
type UnitData struct{}

// LiteralData is a boolean or integer literal.
type LiteralData struct {
	Kind  LiteralKind
	Value uint64
}

// SequenceData evaluates First for effect, then Second for value.
type SequenceData struct {
	First  Expression
	Second Expression
}

// LetData introduces Variable, optionally initialized, scoped over Body.
type LetData struct {
	Variable    Variable
	Initializer Expression // NoExpression if absent
	Body        Expression
}

// ReadData reads a place, with an optional user-written permission.
type ReadData struct {
	Mode  Mode
	Place Place
}

// AssignmentData stores Value into Place; its value is unit.
type AssignmentData struct {
	Place Place
	Value Expression
}

// IfData is a two-armed conditional.
type IfData struct {
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

// CallData calls a function known by entity, as resolved during lowering.
type CallData struct {
	Function  Entity
	Arguments []Expression
}

// MethodCallData calls a method on the owner place. The method is resolved
// by the checker once the owner's type is known.
type MethodCallData struct {
	Owner     Place
	Method    Identifier
	Arguments []Expression
}

// AggregateData constructs a struct value.
type AggregateData struct {
	Entity Entity
	Fields []IdentifiedExpression
}

// IdentifiedExpression pairs a field name with its value expression.
type IdentifiedExpression struct {
	Identifier Identifier
	Expression Expression
}

// ErrorData marks a node where lowering already reported a diagnostic. The
// checker propagates it without emitting a duplicate.
type ErrorData struct{}

func (UnitData) expressionData()       {}
func (LiteralData) expressionData()    {}
func (SequenceData) expressionData()   {}
func (LetData) expressionData()        {}
func (ReadData) expressionData()       {}
func (AssignmentData) expressionData() {}
func (IfData) expressionData()         {}
func (CallData) expressionData()       {}
func (MethodCallData) expressionData() {}
func (AggregateData) expressionData()  {}
func (ErrorData) expressionData()      {}

// PlaceData is the content of one place node.
type PlaceData interface{ placeData() }

var (
	_ PlaceData = VariablePlace{}
	_ PlaceData = EntityPlace{}
	_ PlaceData = TemporaryPlace{}
	_ PlaceData = FieldPlace{}
)

// VariablePlace is a local variable or parameter.
type VariablePlace struct{ Variable Variable }

// EntityPlace is a directly named item (e.g. a global).
type EntityPlace struct{ Entity Entity }

// TemporaryPlace holds the result of an expression so it can be projected.
type TemporaryPlace struct{ Expression Expression }

// FieldPlace projects a field out of an owner place.
type FieldPlace struct {
	Owner Place
	Name  Identifier
}

func (VariablePlace) placeData()  {}
func (EntityPlace) placeData()    {}
func (TemporaryPlace) placeData() {}
func (FieldPlace) placeData()     {}

// VariableData is the content of one variable node.
type VariableData struct {
	Name Identifier
}

// IdentifierData is the content of one identifier occurrence.
type IdentifierData struct {
	Text string
}

// FnBody is the lowered body of one function, together with its argument
// list. The checker walks it exactly once per session.
type FnBody struct {
	Arguments []Variable
	Root      Expression

	expressions []ExpressionData
	places      []PlaceData
	variables   []VariableData
	identifiers []IdentifierData
}

func NewFnBody() *FnBody { return &FnBody{} }

func (b *FnBody) AddExpression(d ExpressionData) Expression {
	b.expressions = append(b.expressions, d)
	return Expression(len(b.expressions))
}

func (b *FnBody) AddPlace(d PlaceData) Place {
	b.places = append(b.places, d)
	return Place(len(b.places))
}

func (b *FnBody) AddVariable(name Identifier) Variable {
	b.variables = append(b.variables, VariableData{Name: name})
	return Variable(len(b.variables))
}

func (b *FnBody) AddIdentifier(text string) Identifier {
	b.identifiers = append(b.identifiers, IdentifierData{Text: text})
	return Identifier(len(b.identifiers))
}

func (b *FnBody) Expression(e Expression) ExpressionData { return b.expressions[e-1] }
func (b *FnBody) Place(p Place) PlaceData                { return b.places[p-1] }
func (b *FnBody) Variable(v Variable) VariableData       { return b.variables[v-1] }
func (b *FnBody) Identifier(i Identifier) IdentifierData { return b.identifiers[i-1] }

func (b *FnBody) NumExpressions() int { return len(b.expressions) }
func (b *FnBody) NumPlaces() int      { return len(b.places) }
func (b *FnBody) NumVariables() int   { return len(b.variables) }
func (b *FnBody) NumIdentifiers() int { return len(b.identifiers) }
