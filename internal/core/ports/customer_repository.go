package ports

import (
	"context"
	"time"

	"github.com/commerceos/customer-system/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing customers.
// Visibility is always decided by the service layer: IncludeDeleted is true
// only for privileged callers.
type ListCustomersFilter struct {
	IncludeDeleted bool
	Page           int // 1-based
	Limit          int // rows per page, >= 1
}

// CustomerPatch is the partial set of mutable fields applied by Update.
// Nil pointers mean "leave untouched".
type CustomerPatch struct {
	Name  *string
	Email *string
}

// CustomerRepository defines persistence operations for customers.
//
// Update, SoftDelete and Restore are single conditional writes: the
// visibility predicate travels inside the same store call as the mutation,
// so check-then-mutate cannot race with a concurrent delete. Each returns
// the post-image, or domain.ErrCustomerNotFound when no row matched the
// predicate (missing, or invisible to the caller).
type CustomerRepository interface {
	// Create inserts a new record, assigning its numeric code from the
	// store sequence. The ID and timestamps are set by the caller.
	Create(ctx context.Context, c *domain.Customer) error

	// FindByID retrieves a customer by id. When includeDeleted is false,
	// soft-deleted rows are treated as absent.
	FindByID(ctx context.Context, id string, includeDeleted bool) (*domain.Customer, error)

	// FindByCode retrieves a customer by its numeric code, with the same
	// visibility semantics as FindByID.
	FindByCode(ctx context.Context, code int64, includeDeleted bool) (*domain.Customer, error)

	// List returns a page of customers matching filter and the total count
	// under the same filter. Ordering is created_at descending with id as
	// tiebreaker, so page boundaries are deterministic.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)

	// Update applies patch, stamps updated_by_id and refreshes updated_at
	// in one conditional write gated on visibility.
	Update(ctx context.Context, id string, patch CustomerPatch, updatedBy string, includeDeleted bool) (*domain.Customer, error)

	// SoftDelete sets deleted_at and deleted_by_id together. The predicate
	// requires the row to be live: re-deleting an already soft-deleted row
	// reports domain.ErrCustomerNotFound.
	SoftDelete(ctx context.Context, id string, deletedBy string, at time.Time) (*domain.Customer, error)

	// Restore clears deleted_at and deleted_by_id together. The predicate
	// matches regardless of deletion state so a soft-deleted row stays
	// reachable for restore.
	Restore(ctx context.Context, id string) (*domain.Customer, error)
}
