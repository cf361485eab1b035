package store

import (
	"maps"
	"slices"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// UserTable holds accounts. Like Table it relies on the Store for locking.
type UserTable struct {
	rows map[uint64]models.User
}

func NewUserTable() *UserTable {
	return &UserTable{rows: make(map[uint64]models.User)}
}

// Insert overwrites by id.
func (t *UserTable) Insert(u models.User) {
	t.rows[u.ID] = u
}

// GetByUsername scans for the first account named name. Ids are visited in
// ascending order, so duplicates resolve to the lowest id.
func (t *UserTable) GetByUsername(name string) (models.User, bool) {
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if u := t.rows[id]; u.UserName == name {
			return u, true
		}
	}
	return models.User{}, false
}

func (t *UserTable) Has(id uint64) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *UserTable) Len() int {
	return len(t.rows)
}

func (t *UserTable) export() map[uint64]models.User {
	return maps.Clone(t.rows)
}

func (t *UserTable) replace(rows map[uint64]models.User) {
	t.rows = make(map[uint64]models.User, len(rows))
	for id, u := range rows {
		t.rows[id] = u
	}
}
