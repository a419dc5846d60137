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

import (
	"strconv"
	"strings"

	"github.com/marlow-lang/typecheck/hir"
)

// TyString formats a type for debugging and test assertions. Entity names
// are resolved through ents when it is non-nil, otherwise printed by index.
func TyString(tables *Tables, ents *hir.EntityTables, t Ty) string {
	var sb strings.Builder
	writePerm(&sb, tables, t.Perm)
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	writeBase(&sb, tables, ents, t.Base)
	return sb.String()
}

// PermString formats a permission for debugging and test assertions.
func PermString(tables *Tables, p Perm) string {
	var sb strings.Builder
	writePerm(&sb, tables, p)
	if sb.Len() == 0 {
		return "share"
	}
	return sb.String()
}

// BaseString formats a base for debugging and test assertions.
func BaseString(tables *Tables, ents *hir.EntityTables, b Base) string {
	var sb strings.Builder
	writeBase(&sb, tables, ents, b)
	return sb.String()
}

func writePerm(sb *strings.Builder, tables *Tables, p Perm) {
	if p == NoPerm {
		return
	}
	switch n := tables.UnternPerm(p); n.Tag {
	case KnownTag:
		if n.Kind != Share {
			sb.WriteString(n.Kind.String())
		}
	case InferredTag:
		sb.WriteString("?p")
		sb.WriteString(strconv.FormatUint(uint64(n.Var), 10))
	case PlaceholderTag:
		sb.WriteString("!p")
		sb.WriteString(strconv.FormatUint(uint64(n.Placeholder.Universe), 10))
		sb.WriteByte('.')
		sb.WriteString(strconv.FormatUint(uint64(n.Placeholder.BoundVar), 10))
	default:
		sb.WriteString("?")
	}
}

func writeBase(sb *strings.Builder, tables *Tables, ents *hir.EntityTables, b Base) {
	if b == NoBase {
		sb.WriteString("<none>")
		return
	}
	switch n := tables.UnternBase(b); n.Tag {
	case KnownTag:
		if n.Data.Kind == PlaceholderType {
			sb.WriteString("!t")
			sb.WriteString(strconv.FormatUint(uint64(n.Data.Placeholder.Universe), 10))
			sb.WriteByte('.')
			sb.WriteString(strconv.FormatUint(uint64(n.Data.Placeholder.BoundVar), 10))
			return
		}
		if n.Data.Kind != NamedType {
			sb.WriteString(n.Data.Kind.String())
			return
		}
		if ents != nil {
			sb.WriteString(ents.Data(n.Data.Entity).Name)
		} else {
			sb.WriteString("entity(")
			sb.WriteString(strconv.FormatUint(uint64(n.Data.Entity), 10))
			sb.WriteByte(')')
		}
		if n.Data.Generics != NoGenerics {
			sb.WriteByte('<')
			tables.UnternGenerics(n.Data.Generics).Range(func(i int, t Ty) bool {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(TyString(tables, ents, t))
				return true
			})
			sb.WriteByte('>')
		}
	case InferredTag:
		sb.WriteString("?t")
		sb.WriteString(strconv.FormatUint(uint64(n.Var), 10))
	case BoundTag:
		sb.WriteString("^")
		sb.WriteString(strconv.FormatUint(uint64(n.Bound), 10))
	default:
		sb.WriteString("?")
	}
}
