// Package store is the in-memory record store.
//
// A Store owns three tables (tasks, services, users) behind a single
// sync.RWMutex. Reads take the shared lock; mutations take the exclusive lock
// and, before releasing it, write a full snapshot through a
// snapshot.Snapshotter. The file therefore always reflects a state the store
// actually held, at the cost of serializing every mutation through the
// snapshot backend.
//
// Table operations never fail for business conditions: absence is reported
// with a boolean. The only error a Store returns from a table operation is
// common.ErrorStorePoisoned, raised once a critical section has panicked.
package store
