// Package models holds the records served by taskkeeper. The same types are
// stored in memory, written to snapshots and exchanged with the HTTP API.
package models

// Task is a to-do item.
type Task struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func (t Task) GetID() uint64 { return t.ID }

// Service is a bookable service with a price and a duration in minutes.
type Service struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Price    float32 `json:"price"`
	Duration uint32  `json:"duration"`
}

func (s Service) GetID() uint64 { return s.ID }

// User is an account. Password always holds a bcrypt hash.
type User struct {
	ID       uint64 `json:"id"`
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (u User) GetID() uint64 { return u.ID }
