package ports

import (
	"context"
	"time"

	"github.com/commerceos/customer-system/internal/core/domain"
)

// CreateCustomerInput carries the caller-supplied attributes for a new
// customer. ID, code and timestamps are assigned by the service/store.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// UpdateCustomerInput carries the target id plus the partial set of
// mutable fields. Nil pointers mean "leave untouched".
type UpdateCustomerInput struct {
	ID    string
	Name  *string
	Email *string
}

// PaginationInput selects a page of results. Both values are 1-based and
// validated at the transport edge.
type PaginationInput struct {
	Page  int
	Limit int
}

// CustomerView is the response shape for a single-record read: every
// entity field except the raw audit ids, plus the resolved summaries. A
// summary key is always present and explicitly null when the audit id was
// empty or the user no longer exists.
type CustomerView struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Code      int64               `json:"code"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt *time.Time          `json:"deleted_at,omitempty"`
	CreatedBy *domain.UserSummary `json:"created_by"`
	UpdatedBy *domain.UserSummary `json:"updated_by"`
	DeletedBy *domain.UserSummary `json:"deleted_by"`
}

// CustomerListItem is the list-row shape: raw audit ids stripped and no
// summary keys at all. Identity enrichment is reserved for single-record
// reads, so list rows do not serialize created_by/updated_by/deleted_by,
// not even as null.
type CustomerListItem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Code      int64      `json:"code"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ListMeta describes the page returned by List.
type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// ListCustomersResult is the paginated list response.
type ListCustomersResult struct {
	Meta ListMeta           `json:"meta"`
	Data []CustomerListItem `json:"data"`
}

// CustomerService defines the lifecycle operations. Every operation takes
// the authenticated caller: it decides soft-delete visibility and is
// stamped into the audit fields on mutations.
type CustomerService interface {
	Health() string
	Create(ctx context.Context, input CreateCustomerInput, caller domain.User) (*CustomerView, error)
	List(ctx context.Context, pagination PaginationInput, caller domain.User) (*ListCustomersResult, error)
	FindByID(ctx context.Context, id string, caller domain.User) (*CustomerView, error)
	FindByCode(ctx context.Context, code int64, caller domain.User) (*CustomerView, error)
	Update(ctx context.Context, input UpdateCustomerInput, caller domain.User) (*CustomerView, error)
	Remove(ctx context.Context, id string, caller domain.User) (*CustomerView, error)
	Restore(ctx context.Context, id string, caller domain.User) (*CustomerView, error)
}
