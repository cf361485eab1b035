// Package snapshot persists the whole record store as one JSON document.
//
// The document has one top-level collection per table, each a mapping from
// the string-encoded numeric id to the record:
//
//	{"tasks": {"1": {...}}, "services": {...}, "users": {"7": {...}}}
//
// Backends replace the previous document on every Save. Load reports a missing
// document with an error wrapping common.ErrorNotFound so callers can tell
// "never saved" from "unreadable".
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// Document is the serialized form of the record store.
type Document struct {
	Tasks    map[uint64]models.Task    `json:"tasks"`
	Services map[uint64]models.Service `json:"services"`
	Users    map[uint64]models.User    `json:"users"`
}

// NewDocument returns a document with empty, non-nil collections.
func NewDocument() *Document {
	return &Document{
		Tasks:    make(map[uint64]models.Task),
		Services: make(map[uint64]models.Service),
		Users:    make(map[uint64]models.User),
	}
}

func (d *Document) normalize() {
	if d.Tasks == nil {
		d.Tasks = make(map[uint64]models.Task)
	}
	if d.Services == nil {
		d.Services = make(map[uint64]models.Service)
	}
	if d.Users == nil {
		d.Users = make(map[uint64]models.User)
	}
}

// Encode serializes d.
func Encode(d *Document) ([]byte, error) {
	if d == nil {
		d = NewDocument()
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Decode parses a document. Collections absent from the input come back empty.
func Decode(b []byte) (*Document, error) {
	d := &Document{}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	d.normalize()
	return d, nil
}

// Snapshotter stores and retrieves the document.
type Snapshotter interface {
	Save(ctx context.Context, d *Document) error
	Load(ctx context.Context) (*Document, error)
}
