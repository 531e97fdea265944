// Package models defines the content-platform entities, their validation
// rules, and the seed datasets materialized for never-written collections.
package models

import "time"

// Meta carries the fields shared by every entity. Embedded by value in each
// concrete type so JSON documents stay flat.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityID returns the assigned id, or "" when not yet assigned.
func (m *Meta) EntityID() string { return m.ID }

// SetEntityID assigns the id once. An already-assigned id is never
// reassigned, regardless of which path (remote or local) produced it.
func (m *Meta) SetEntityID(id string) {
	if m.ID == "" {
		m.ID = id
	}
}

// Stamp sets CreatedAt on first call and advances UpdatedAt. UpdatedAt is
// monotonically non-decreasing: a stamp with an earlier clock is ignored.
func (m *Meta) Stamp(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if now.After(m.UpdatedAt) {
		m.UpdatedAt = now
	}
}

// Entity is the contract the generic repository needs from every record.
type Entity interface {
	EntityID() string
	SetEntityID(string)
	Stamp(time.Time)
}
