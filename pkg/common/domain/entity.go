package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries identity and timestamps. Domain types embed it instead of
// inheriting from a common base.
type Entity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewEntity stamps creation time. uuid.Nil means "generate one".
func NewEntity(id uuid.UUID) Entity {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	return Entity{id: id, createdAt: now, updatedAt: now}
}

func RestoreEntity(id uuid.UUID, createdAt, updatedAt time.Time) Entity {
	return Entity{id: id, createdAt: createdAt.UTC(), updatedAt: updatedAt.UTC()}
}

func (e Entity) ID() uuid.UUID        { return e.id }
func (e Entity) CreatedAt() time.Time { return e.createdAt }
func (e Entity) UpdatedAt() time.Time { return e.updatedAt }

// Touch refreshes the last-updated timestamp.
func (e *Entity) Touch() {
	now := time.Now().UTC()
	if now.Before(e.updatedAt) {
		now = e.updatedAt
	}
	e.updatedAt = now
}
