package domain

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrUserLookupUnavailable = errors.New("user lookup unavailable")

// Customer is the core aggregate root. A customer is never hard-deleted:
// DeletedAt != nil marks the record soft-deleted and invisible to
// non-privileged callers on every read path.
type Customer struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	// Code is a store-assigned numeric identifier, unique alongside ID.
	// Lookups are typed to one or the other, never interchangeable.
	Code int64 `json:"code" bson:"code"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`

	// Audit trail: the acting user's id at the time of each operation.
	// DeletedByID and DeletedAt are always set and cleared together.
	CreatedByID string `json:"created_by_id,omitempty" bson:"created_by_id,omitempty"`
	UpdatedByID string `json:"updated_by_id,omitempty" bson:"updated_by_id,omitempty"`
	DeletedByID string `json:"deleted_by_id,omitempty" bson:"deleted_by_id,omitempty"`
}

// IsDeleted reports whether the customer is soft-deleted.
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}
