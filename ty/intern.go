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

package ty

// Tables interns Perm, Base, and Generics values, assigning structurally
// equal data a stable small-integer key. Keys are only meaningful relative
// to the Tables that produced them.
type Tables struct {
	perms      []PermNode
	permLookup map[PermNode]Perm

	bases      []BaseNode
	baseLookup map[BaseNode]Base

	generics       []TyList
	genericsLookup map[string]Generics
}

func NewTables() *Tables {
	return &Tables{
		permLookup:     make(map[PermNode]Perm, 32),
		baseLookup:     make(map[BaseNode]Base, 32),
		genericsLookup: make(map[string]Generics, 8),
	}
}

// InternPerm returns the key for n, allocating one if needed.
func (t *Tables) InternPerm(n PermNode) Perm {
	if p, ok := t.permLookup[n]; ok {
		return p
	}
	t.perms = append(t.perms, n)
	p := Perm(len(t.perms))
	t.permLookup[n] = p
	return p
}

// UnternPerm returns the content of an interned permission.
func (t *Tables) UnternPerm(p Perm) PermNode {
	return t.perms[p-1]
}

// InternBase returns the key for n, allocating one if needed.
func (t *Tables) InternBase(n BaseNode) Base {
	if b, ok := t.baseLookup[n]; ok {
		return b
	}
	t.bases = append(t.bases, n)
	b := Base(len(t.bases))
	t.baseLookup[n] = b
	return b
}

// UnternBase returns the content of an interned base.
func (t *Tables) UnternBase(b Base) BaseNode {
	return t.bases[b-1]
}

// InternGenerics returns the key for a list of generic arguments. The empty
// list interns to NoGenerics.
func (t *Tables) InternGenerics(l TyList) Generics {
	if l.Len() == 0 {
		return NoGenerics
	}
	key := genericsKey(l)
	if g, ok := t.genericsLookup[key]; ok {
		return g
	}
	t.generics = append(t.generics, l)
	g := Generics(len(t.generics))
	t.genericsLookup[key] = g
	return g
}

// UnternGenerics returns the argument list for an interned Generics key.
func (t *Tables) UnternGenerics(g Generics) TyList {
	if g == NoGenerics {
		return EmptyTyList
	}
	return t.generics[g-1]
}

// NumPerms returns the number of interned permissions. Perm keys are dense
// in [1, NumPerms].
func (t *Tables) NumPerms() int { return len(t.perms) }

func genericsKey(l TyList) string {
	buf := make([]byte, 0, l.Len()*8)
	l.Range(func(_ int, t Ty) bool {
		buf = append(buf,
			byte(t.Perm>>24), byte(t.Perm>>16), byte(t.Perm>>8), byte(t.Perm),
			byte(t.Base>>24), byte(t.Base>>16), byte(t.Base>>8), byte(t.Base))
		return true
	})
	return string(buf)
}

// Convenience constructors:

func (t *Tables) KnownPerm(k PermKind) Perm {
	return t.InternPerm(PermNode{Tag: KnownTag, Kind: k})
}

func (t *Tables) InferredPerm(v PermVar) Perm {
	return t.InternPerm(PermNode{Tag: InferredTag, Var: v})
}

func (t *Tables) PlaceholderPerm(p Placeholder) Perm {
	return t.InternPerm(PermNode{Tag: PlaceholderTag, Placeholder: p})
}

func (t *Tables) KnownBase(d BaseData) Base {
	return t.InternBase(BaseNode{Tag: KnownTag, Data: d})
}

func (t *Tables) InferredBase(v InferVar) Base {
	return t.InternBase(BaseNode{Tag: InferredTag, Var: v})
}

func (t *Tables) PlaceholderBase(p Placeholder) Base {
	return t.KnownBase(BaseData{Kind: PlaceholderType, Placeholder: p})
}

func (t *Tables) BoundBase(v BoundVar) Base {
	return t.InternBase(BaseNode{Tag: BoundTag, Bound: v})
}
