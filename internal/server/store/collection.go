package store

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// Collection is a locked, write-through view of one entity table.
type Collection[T Record] struct {
	store *Store
	table *Table[T]
	name  string
}

// Insert stores v, replacing any record with the same id.
func (c *Collection[T]) Insert(ctx context.Context, v T) error {
	return c.store.write(ctx, c.name, "insert", func() bool {
		c.table.Insert(v)
		return true
	})
}

// Get returns the record with id; ok is false when it does not exist.
func (c *Collection[T]) Get(id uint64) (v T, ok bool, err error) {
	err = c.store.read(func() {
		v, ok = c.table.Get(id)
	})
	return v, ok, err
}

func (c *Collection[T]) GetAll() ([]T, error) {
	var out []T
	err := c.store.read(func() {
		out = c.table.GetAll()
	})
	return out, err
}

// Update replaces the record with v's id and reports whether it existed.
// An absent id is created, unless the store runs in strict mode, in which
// case nothing is written.
func (c *Collection[T]) Update(ctx context.Context, v T) (existed bool, err error) {
	err = c.store.write(ctx, c.name, "update", func() bool {
		if c.store.strictUpdate && !c.table.Has(v.GetID()) {
			return false
		}
		existed = c.table.Update(v)
		return true
	})
	return existed, err
}

// Delete removes id. Deleting an absent id is a no-op and writes nothing.
func (c *Collection[T]) Delete(ctx context.Context, id uint64) (existed bool, err error) {
	err = c.store.write(ctx, c.name, "delete", func() bool {
		existed = c.table.Delete(id)
		return existed
	})
	return existed, err
}

// UserCollection is the locked, write-through view of the user table.
type UserCollection struct {
	store *Store
}

// Insert stores u unconditionally, replacing the account with the same id.
func (c *UserCollection) Insert(ctx context.Context, u models.User) error {
	return c.store.write(ctx, collectionUsers, "insert", func() bool {
		c.store.users.Insert(u)
		return true
	})
}

// Register creates u. Accounts are immutable: it reports false and writes
// nothing when u.ID already exists or u.UserName is taken.
func (c *UserCollection) Register(ctx context.Context, u models.User) (ok bool, err error) {
	err = c.store.write(ctx, collectionUsers, "register", func() bool {
		if c.store.users.Has(u.ID) {
			return false
		}
		if _, taken := c.store.users.GetByUsername(u.UserName); taken {
			return false
		}
		c.store.users.Insert(u)
		ok = true
		return true
	})
	return ok, err
}

func (c *UserCollection) GetByUsername(name string) (u models.User, ok bool, err error) {
	err = c.store.read(func() {
		u, ok = c.store.users.GetByUsername(name)
	})
	return u, ok, err
}
