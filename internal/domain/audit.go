package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit holds the bookkeeping fields shared by every catalog entity.
// It is embedded by value; persistence code reaches it through Auditable.
type Audit struct {
	Created          time.Time  `json:"created" db:"created"`
	Updated          time.Time  `json:"updated" db:"updated"`
	CreatorID        *uuid.UUID `json:"creator" db:"creator_id"`
	LastModifiedByID *uuid.UUID `json:"last_modified_by" db:"last_modified_by_id"`
}

// Auditable is implemented by any entity embedding Audit.
type Auditable interface {
	AuditFields() *Audit
}

// AuditFields returns the embedded audit block.
func (a *Audit) AuditFields() *Audit {
	return a
}

// StampCreate records the first persist of the owning entity.
// The creator is only set when an actor is given and no creator was recorded yet.
func (a *Audit) StampCreate(actor *User, now time.Time) {
	if a.Created.IsZero() {
		a.Created = now
	}
	a.touch(now)

	if actor != nil && a.CreatorID == nil {
		id := actor.ID
		a.CreatorID = &id
	}
}

// StampUpdate records a subsequent persist of the owning entity.
func (a *Audit) StampUpdate(actor *User, now time.Time) {
	a.touch(now)

	if actor != nil {
		id := actor.ID
		a.LastModifiedByID = &id
	}
}

// touch moves Updated forward; it never goes backwards when the clock does.
func (a *Audit) touch(now time.Time) {
	if now.Before(a.Updated) {
		return
	}
	a.Updated = now
}

// BeforeCreate is the hook the persistence layer runs right before inserting e.
// The acting identity, if any, is taken from ctx.
func BeforeCreate(ctx context.Context, e Auditable, now time.Time) {
	actor, _ := ActorFromContext(ctx)
	e.AuditFields().StampCreate(actor, now)
}

// BeforeUpdate is the hook the persistence layer runs right before updating e.
func BeforeUpdate(ctx context.Context, e Auditable, now time.Time) {
	actor, _ := ActorFromContext(ctx)
	e.AuditFields().StampUpdate(actor, now)
}
