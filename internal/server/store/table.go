package store

import (
	"maps"
	"slices"
)

// Record is anything keyed by a numeric id.
type Record interface {
	GetID() uint64
}

// Table maps ids to records. It is not safe for concurrent use; the Store
// serializes access.
type Table[T Record] struct {
	rows map[uint64]T
}

func NewTable[T Record]() *Table[T] {
	return &Table[T]{rows: make(map[uint64]T)}
}

// Insert associates v.GetID() with v, replacing any previous value.
func (t *Table[T]) Insert(v T) {
	t.rows[v.GetID()] = v
}

func (t *Table[T]) Get(id uint64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// GetAll returns every record. The slice is freshly allocated; callers must
// not depend on its order.
func (t *Table[T]) GetAll() []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		out = append(out, t.rows[id])
	}
	return out
}

// Update is a full replace by id. An unknown id is created. The result tells
// whether the id existed before.
func (t *Table[T]) Update(v T) bool {
	_, existed := t.rows[v.GetID()]
	t.rows[v.GetID()] = v
	return existed
}

// Delete removes id and reports whether it was present.
func (t *Table[T]) Delete(id uint64) bool {
	_, existed := t.rows[id]
	delete(t.rows, id)
	return existed
}

func (t *Table[T]) Len() int {
	return len(t.rows)
}

func (t *Table[T]) Has(id uint64) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *Table[T]) export() map[uint64]T {
	return maps.Clone(t.rows)
}

func (t *Table[T]) replace(rows map[uint64]T) {
	t.rows = make(map[uint64]T, len(rows))
	for id, v := range rows {
		t.rows[id] = v
	}
}
