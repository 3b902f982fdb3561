package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/commerceos/customer-system/internal/core/domain"
	"github.com/commerceos/customer-system/internal/core/ports"
)

// enrich replaces the raw audit ids of every record in the batch with
// resolved user summaries. The id set is deduplicated across all records
// and all three audit fields, so at most one resolver round-trip happens
// per call regardless of batch size. A failed resolve aborts the whole
// batch: partial enrichment is never returned as if it were complete.
func (s *CustomerService) enrich(ctx context.Context, customers []*domain.Customer, caller domain.User) ([]ports.CustomerView, error) {
	ids := collectAuditIDs(customers)

	views := make([]ports.CustomerView, 0, len(customers))
	if len(ids) == 0 {
		for _, c := range customers {
			views = append(views, newView(c))
		}
		return views, nil
	}

	summaries, err := s.resolver.ResolveMany(ctx, ids, caller)
	if err != nil {
		s.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to resolve audit users")
		return nil, fmt.Errorf("resolve audit users: %w", err)
	}

	byID := make(map[string]domain.UserSummary, len(summaries))
	for _, u := range summaries {
		byID[u.ID] = u
	}

	for _, c := range customers {
		v := newView(c)
		v.CreatedBy = lookupSummary(byID, c.CreatedByID)
		v.UpdatedBy = lookupSummary(byID, c.UpdatedByID)
		v.DeletedBy = lookupSummary(byID, c.DeletedByID)
		views = append(views, v)
	}
	return views, nil
}

func (s *CustomerService) enrichOne(ctx context.Context, customer *domain.Customer, caller domain.User) (*ports.CustomerView, error) {
	views, err := s.enrich(ctx, []*domain.Customer{customer}, caller)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// collectAuditIDs gathers the non-empty audit ids across the batch,
// deduplicated and sorted for deterministic request payloads.
func collectAuditIDs(customers []*domain.Customer) []string {
	seen := make(map[string]struct{})
	for _, c := range customers {
		for _, id := range []string{c.CreatedByID, c.UpdatedByID, c.DeletedByID} {
			if id != "" {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// lookupSummary substitutes nil when the identity service returned no
// match, e.g. the user no longer exists.
func lookupSummary(byID map[string]domain.UserSummary, id string) *domain.UserSummary {
	if id == "" {
		return nil
	}
	u, ok := byID[id]
	if !ok {
		return nil
	}
	return &u
}

// newListItem strips the raw audit ids from a record for a list row; the
// summary keys are absent from this shape altogether.
func newListItem(c *domain.Customer) ports.CustomerListItem {
	return ports.CustomerListItem{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// newView strips the raw audit ids from a record for a single-record read.
// Summaries stay nil until enrich fills them.
func newView(c *domain.Customer) ports.CustomerView {
	return ports.CustomerView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}
