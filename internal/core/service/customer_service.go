package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/commerceos/customer-system/internal/core/domain"
	"github.com/commerceos/customer-system/internal/core/ports"
	"github.com/commerceos/customer-system/internal/core/rpcerr"
)

// CustomerService implements the customer lifecycle: create, paginated
// list, lookups, update, soft-delete and restore, with audit-id enrichment
// on single-record reads.
type CustomerService struct {
	repo     ports.CustomerRepository
	resolver ports.UserResolver
	logger   zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, resolver ports.UserResolver, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, resolver: resolver, logger: logger}
}

func (s *CustomerService) Health() string {
	return "Customer service is up and running!"
}

// Create inserts a new customer stamped with the caller as creator. The id
// is assigned here; the numeric code is assigned by the store sequence.
func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput, caller domain.User) (*ports.CustomerView, error) {
	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Email:       input.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: caller.ID,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create customer")
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.logger.Info().Str("customer_id", customer.ID).Int64("code", customer.Code).Str("created_by", caller.ID).Msg("customer created")

	return s.enrichOne(ctx, customer, caller)
}

// List returns one page of customers visible to the caller, newest first.
// Rows are stripped of the raw audit ids but not enriched: enrichment is
// reserved for single-record reads to keep list latency flat.
func (s *CustomerService) List(ctx context.Context, pagination ports.PaginationInput, caller domain.User) (*ports.ListCustomersResult, error) {
	filter := ports.ListCustomersFilter{
		IncludeDeleted: caller.IsPrivileged(),
		Page:           pagination.Page,
		Limit:          pagination.Limit,
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Int("page", pagination.Page).Msg("failed to list customers")
		return nil, fmt.Errorf("list customers: %w", err)
	}

	data := make([]ports.CustomerListItem, 0, len(rows))
	for _, c := range rows {
		data = append(data, newListItem(c))
	}

	return &ports.ListCustomersResult{
		Meta: ports.ListMeta{
			Total:    total,
			Page:     pagination.Page,
			LastPage: int(math.Ceil(float64(total) / float64(pagination.Limit))),
		},
		Data: data,
	}, nil
}

// FindByID resolves a single customer visible to the caller.
func (s *CustomerService) FindByID(ctx context.Context, id string, caller domain.User) (*ports.CustomerView, error) {
	customer, err := s.repo.FindByID(ctx, id, caller.IsPrivileged())
	if err != nil {
		return nil, s.lookupError(err, "customer_id", id)
	}
	return s.enrichOne(ctx, customer, caller)
}

// FindByCode is FindByID keyed by the numeric code.
func (s *CustomerService) FindByCode(ctx context.Context, code int64, caller domain.User) (*ports.CustomerView, error) {
	customer, err := s.repo.FindByCode(ctx, code, caller.IsPrivileged())
	if err != nil {
		return nil, s.lookupError(err, "code", fmt.Sprint(code))
	}
	return s.enrichOne(ctx, customer, caller)
}

// Update applies the partial fields and stamps the caller as updater. The
// visibility predicate rides inside the same conditional write, so a row
// the caller cannot see behaves exactly like a missing one.
func (s *CustomerService) Update(ctx context.Context, input ports.UpdateCustomerInput, caller domain.User) (*ports.CustomerView, error) {
	patch := ports.CustomerPatch{Name: input.Name, Email: input.Email}

	customer, err := s.repo.Update(ctx, input.ID, patch, caller.ID, caller.IsPrivileged())
	if err != nil {
		return nil, s.lookupError(err, "customer_id", input.ID)
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("updated_by", caller.ID).Msg("customer updated")

	return s.enrichOne(ctx, customer, caller)
}

// Remove soft-deletes a customer, setting deleted_at and deleted_by_id
// together. The row must be live: removing an already soft-deleted row
// reports not-found rather than refreshing the deletion stamp.
func (s *CustomerService) Remove(ctx context.Context, id string, caller domain.User) (*ports.CustomerView, error) {
	customer, err := s.repo.SoftDelete(ctx, id, caller.ID, time.Now().UTC())
	if err != nil {
		return nil, s.lookupError(err, "customer_id", id)
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("deleted_by", caller.ID).Msg("customer soft-deleted")

	return s.enrichOne(ctx, customer, caller)
}

// Restore clears the soft-delete marker, making the record indistinguishable
// from a never-deleted one apart from updated_at. The existence check is
// deliberately visibility-permissive so the soft-deleted row is reachable;
// authorization is enforced separately through the administrative role.
func (s *CustomerService) Restore(ctx context.Context, id string, caller domain.User) (*ports.CustomerView, error) {
	if !caller.IsPrivileged() {
		return nil, rpcerr.Unauthorized("restore requires the Admin role")
	}

	customer, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "customer_id", id)
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("restored_by", caller.ID).Msg("customer restored")

	return s.enrichOne(ctx, customer, caller)
}

// lookupError maps the repository's not-found sentinel to the classified
// error callers see; anything else is logged and propagated for masking.
func (s *CustomerService) lookupError(err error, keyField, key string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return rpcerr.NotFound("customer not found")
	}
	s.logger.Error().Err(err).Str(keyField, key).Msg("customer lookup failed")
	return fmt.Errorf("customer lookup: %w", err)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrCustomerNotFound)
}
