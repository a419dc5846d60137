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

package hir

// Entity is a stable, interned identifier for a declared item (a struct, a
// field, a function, ...). Entities are created once, during lowering, and
// are never mutated; all per-item query results are keyed by Entity.
type Entity uint32

// NoEntity is the zero Entity. It never names a declared item.
const NoEntity Entity = 0

// ItemKind describes the sort of item an Entity names.
type ItemKind uint8

const (
	StructItem ItemKind = 1 + iota
	FieldItem
	FunctionItem
	MethodItem
)

func (k ItemKind) String() string {
	switch k {
	case StructItem:
		return "struct"
	case FieldItem:
		return "field"
	case FunctionItem:
		return "function"
	case MethodItem:
		return "method"
	default:
		return "?"
	}
}

// EntityData is the interned content of an Entity.
type EntityData struct {
	// Parent is the enclosing item, or NoEntity for top-level items.
	Parent Entity
	Kind   ItemKind
	Name   string
}

// EntityTables interns EntityData values, assigning each distinct value a
// stable Entity key for the life of the compilation.
type EntityTables struct {
	entities []EntityData
	lookup   map[EntityData]Entity
}

func NewEntityTables() *EntityTables {
	return &EntityTables{lookup: make(map[EntityData]Entity, 64)}
}

// Intern returns the Entity for d, allocating one if d was not seen before.
func (t *EntityTables) Intern(d EntityData) Entity {
	if e, ok := t.lookup[d]; ok {
		return e
	}
	t.entities = append(t.entities, d)
	e := Entity(len(t.entities))
	t.lookup[d] = e
	return e
}

// Data returns the interned content of e.
func (t *EntityTables) Data(e Entity) EntityData {
	return t.entities[e-1]
}

// Len returns the number of interned entities.
func (t *EntityTables) Len() int { return len(t.entities) }
