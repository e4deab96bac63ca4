package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// LifecycleState tags whether an entity is live or soft-deleted.
type LifecycleState string

const (
	StateActive  LifecycleState = "ACTIVE"
	StateDeleted LifecycleState = "DELETED"
)

// Lifecycle is the soft-delete state carried on every org-scoped entity.
// It is persisted as a nullable deleted_at column; carrying the tagged state
// on the entity keeps the "is this row live?" question in one place instead
// of an ad-hoc timestamp check in every caller.
type Lifecycle struct {
	State     LifecycleState `json:"state"`
	DeletedAt *time.Time     `json:"deletedAt,omitempty"`
}

// ActiveLifecycle returns the lifecycle of a live entity.
func ActiveLifecycle() Lifecycle {
	return Lifecycle{State: StateActive}
}

// DeletedLifecycle returns the lifecycle of an entity soft-deleted at t.
func DeletedLifecycle(t time.Time) Lifecycle {
	return Lifecycle{State: StateDeleted, DeletedAt: &t}
}

// LifecycleFromDeletedAt reconstructs the tagged state from a scanned
// deleted_at column.
func LifecycleFromDeletedAt(deletedAt *time.Time) Lifecycle {
	if deletedAt == nil {
		return ActiveLifecycle()
	}
	return Lifecycle{State: StateDeleted, DeletedAt: deletedAt}
}

// Deleted reports whether the entity has been soft-deleted.
func (l Lifecycle) Deleted() bool {
	return l.State == StateDeleted
}
