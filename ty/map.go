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

// Mapper rewrites permissions and bases while a value is traversed. It is
// how generic substitution and permission adjustment are expressed without
// one traversal per use case.
type Mapper interface {
	Tables() *Tables
	MapPerm(p Perm) Perm
	MapBase(b Base) Base
}

// MapTy rewrites both halves of a type through m.
func MapTy(m Mapper, t Ty) Ty {
	return Ty{Perm: m.MapPerm(t.Perm), Base: m.MapBase(t.Base)}
}

// MapGenerics rewrites every generic argument through m, re-interning the
// resulting list.
func MapGenerics(m Mapper, g Generics) Generics {
	if g == NoGenerics {
		return NoGenerics
	}
	tables := m.Tables()
	b := NewTyListBuilder()
	tables.UnternGenerics(g).Range(func(_ int, t Ty) bool {
		b.Append(MapTy(m, t))
		return true
	})
	return tables.InternGenerics(b.Build())
}

// MapBaseData rewrites the generic arguments of a known base through m.
func MapBaseData(m Mapper, d BaseData) BaseData {
	d.Generics = MapGenerics(m, d.Generics)
	return d
}
