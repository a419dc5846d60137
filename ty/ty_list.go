package ty

import (
	"github.com/benbjohnson/immutable"
)

var emptyList = immutable.NewList()

var EmptyTyList = TyList{emptyList}

// TyList is an immutable list of types, used for generic argument lists.
type TyList struct {
	l *immutable.List
}

func NewTyList() TyList { return TyList{emptyList} }

func SingletonTyList(t Ty) TyList {
	return TyList{emptyList.Append(t)}
}

func TyListOf(ts ...Ty) TyList {
	b := NewTyListBuilder()
	for _, t := range ts {
		b.Append(t)
	}
	return b.Build()
}

func (l TyList) Len() int {
	if l.l == nil {
		return 0
	}
	return l.l.Len()
}

func (l TyList) Get(i int) Ty { return l.l.Get(i).(Ty) }

// If f returns false, iteration will be stopped.
func (l TyList) Range(f func(int, Ty) bool) {
	if l.l == nil {
		return
	}
	iter := l.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Ty)) {
			return
		}
	}
}

func (l TyList) Builder() TyListBuilder {
	imm := l.l
	if imm == nil {
		imm = emptyList
	}
	return TyListBuilder{immutable.NewListBuilder(imm)}
}

type TyListBuilder struct {
	b *immutable.ListBuilder
}

func NewTyListBuilder() TyListBuilder {
	return TyListBuilder{immutable.NewListBuilder(emptyList)}
}

func (b TyListBuilder) Len() int        { return b.b.Len() }
func (b TyListBuilder) Append(t Ty)     { b.b.Append(t) }
func (b TyListBuilder) Set(i int, t Ty) { b.b.Set(i, t) }
func (b TyListBuilder) Build() TyList   { return TyList{b.b.List()} }
