package java

import (
	"cmp"
	"slices"
)

// SortKey orders members for emission. It never identifies a member.
type SortKey struct {
	Order float64
	Name  string
}

// Compare orders keys by Order, then Name.
func (k SortKey) Compare(o SortKey) int {
	if c := cmp.Compare(k.Order, o.Order); c != 0 {
		return c
	}

	return cmp.Compare(k.Name, o.Name)
}

// Default member orders used by the convenience adders.
const (
	OrderStaticField  float64 = 100
	OrderField        float64 = 200
	OrderConstructor  float64 = 300
	OrderStaticMethod float64 = 400
	OrderMethod       float64 = 500
	OrderType         float64 = 600
)

type member[T any] struct {
	gen T
	key SortKey
}

// sorted returns the generators ordered by key. Equal keys keep their relative order.
func sorted[T any](ms []member[T]) []T {
	ordered := slices.Clone(ms)
	slices.SortStableFunc(ordered, func(a, b member[T]) int {
		return a.key.Compare(b.key)
	})

	gens := make([]T, len(ordered))
	for i, m := range ordered {
		gens[i] = m.gen
	}

	return gens
}
