package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/commerceos/customer-system/internal/core/domain"
	"github.com/commerceos/customer-system/internal/core/ports"
	"github.com/commerceos/customer-system/internal/core/rpcerr"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	byID    map[string]*domain.Customer
	codeSeq int64
	failErr error // if set, every call returns this error
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.codeSeq++
	c.Code = r.codeSeq
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string, includeDeleted bool) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok || (!includeDeleted && c.IsDeleted()) {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByCode(_ context.Context, code int64, includeDeleted bool) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, c := range r.byID {
		if c.Code == code {
			if !includeDeleted && c.IsDeleted() {
				return nil, domain.ErrCustomerNotFound
			}
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

// List mirrors the real Mongo query: visibility filter, created_at
// descending with id tiebreak, skip/limit pagination, total under filter.
func (r *stubCustomerRepo) List(_ context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	if r.failErr != nil {
		return nil, 0, r.failErr
	}

	var matched []*domain.Customer
	for _, c := range r.byID {
		if !f.IncludeDeleted && c.IsDeleted() {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))

	skip := (f.Page - 1) * f.Limit
	if skip >= len(matched) {
		return []*domain.Customer{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id string, patch ports.CustomerPatch, updatedBy string, includeDeleted bool) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok || (!includeDeleted && c.IsDeleted()) {
		return nil, domain.ErrCustomerNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	c.UpdatedByID = updatedBy
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id string, deletedBy string, at time.Time) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok || c.IsDeleted() {
		return nil, domain.ErrCustomerNotFound
	}
	c.DeletedAt = &at
	c.DeletedByID = deletedBy
	c.UpdatedAt = at
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) Restore(_ context.Context, id string) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	c.DeletedAt = nil
	c.DeletedByID = ""
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Stub identity resolver
// ---------------------------------------------------------------------------

type stubUserResolver struct {
	known    map[string]domain.UserSummary
	failErr  error
	calls    [][]string // ids of every ResolveMany invocation
}

func newStubUserResolver(users ...domain.UserSummary) *stubUserResolver {
	known := make(map[string]domain.UserSummary, len(users))
	for _, u := range users {
		known[u.ID] = u
	}
	return &stubUserResolver{known: known}
}

func (r *stubUserResolver) ResolveMany(_ context.Context, ids []string, _ domain.User) ([]domain.UserSummary, error) {
	r.calls = append(r.calls, append([]string(nil), ids...))
	if r.failErr != nil {
		return nil, r.failErr
	}
	var out []domain.UserSummary
	for _, id := range ids {
		if u, ok := r.known[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var (
	admin   = domain.User{ID: "admin-1", Username: "root", Roles: []domain.Role{domain.RoleAdmin}}
	regular = domain.User{ID: "user-1", Username: "alice", Roles: []domain.Role{domain.RoleUser}}
)

func newTestService(repo *stubCustomerRepo, resolver *stubUserResolver) *CustomerService {
	return NewCustomerService(repo, resolver, discardLogger)
}

func mustCreate(t *testing.T, s *CustomerService, caller domain.User, name, email string) *ports.CustomerView {
	t.Helper()
	view, err := s.Create(context.Background(), ports.CreateCustomerInput{Name: name, Email: email}, caller)
	if err != nil {
		t.Fatalf("Create(%s) returned error: %v", name, err)
	}
	return view
}

func asRPCError(t *testing.T, err error) *rpcerr.Error {
	t.Helper()
	var ce *rpcerr.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected classified rpc error, got %v", err)
	}
	return ce
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCustomerService_Create_StampsCreator(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver(domain.UserSummary{ID: regular.ID, Username: "alice", Email: "alice@example.com"})
	svc := newTestService(repo, resolver)

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")

	stored := repo.byID[view.ID]
	if stored == nil {
		t.Fatal("customer was not persisted")
	}
	if stored.CreatedByID != regular.ID {
		t.Errorf("CreatedByID = %q, want %q", stored.CreatedByID, regular.ID)
	}
	if stored.UpdatedByID != "" || stored.DeletedByID != "" {
		t.Errorf("UpdatedByID/DeletedByID = %q/%q, want empty", stored.UpdatedByID, stored.DeletedByID)
	}
	if view.Code != 1 {
		t.Errorf("Code = %d, want store-assigned 1", view.Code)
	}
	if view.CreatedBy == nil || view.CreatedBy.Username != "alice" {
		t.Errorf("CreatedBy = %+v, want resolved summary for alice", view.CreatedBy)
	}
}

func TestCustomerService_Create_CodeIncrements(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	first := mustCreate(t, svc, regular, "First", "first@example.com")
	second := mustCreate(t, svc, regular, "Second", "second@example.com")

	if second.Code != first.Code+1 {
		t.Errorf("codes = %d, %d; want consecutive", first.Code, second.Code)
	}
}

func TestCustomerService_Create_StoreFaultPropagates(t *testing.T) {
	repo := newStubCustomerRepo()
	repo.failErr = errors.New("duplicate key")
	svc := newTestService(repo, newStubUserResolver())

	_, err := svc.Create(context.Background(), ports.CreateCustomerInput{Name: "Acme", Email: "a@b.c"}, regular)
	if err == nil {
		t.Fatal("expected error from failing store")
	}

	// The raw store failure is masked behind the generic classified error.
	ce := rpcerr.Normalize(err, discardLogger)
	if ce.Status != rpcerr.StatusBadRequest {
		t.Errorf("normalized status = %d, want %d", ce.Status, rpcerr.StatusBadRequest)
	}
	if ce.Message == "duplicate key" {
		t.Error("store failure text leaked through normalization")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestCustomerService_List_Pagination(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	for i := 0; i < 25; i++ {
		mustCreate(t, svc, regular, fmt.Sprintf("Customer %02d", i), fmt.Sprintf("c%02d@example.com", i))
	}

	cases := []struct {
		page     int
		wantRows int
	}{
		{page: 1, wantRows: 10},
		{page: 3, wantRows: 5},
		{page: 4, wantRows: 0}, // past the end: empty page, no error
	}
	for _, tc := range cases {
		res, err := svc.List(context.Background(), ports.PaginationInput{Page: tc.page, Limit: 10}, regular)
		if err != nil {
			t.Fatalf("List(page=%d) returned error: %v", tc.page, err)
		}
		if res.Meta.Total != 25 {
			t.Errorf("page %d: Total = %d, want 25", tc.page, res.Meta.Total)
		}
		if res.Meta.LastPage != 3 {
			t.Errorf("page %d: LastPage = %d, want 3", tc.page, res.Meta.LastPage)
		}
		if len(res.Data) != tc.wantRows {
			t.Errorf("page %d: %d rows, want %d", tc.page, len(res.Data), tc.wantRows)
		}
	}
}

func TestCustomerService_List_SoftDeleteVisibility(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	kept := mustCreate(t, svc, regular, "Kept", "kept@example.com")
	removed := mustCreate(t, svc, regular, "Removed", "removed@example.com")
	if _, err := svc.Remove(context.Background(), removed.ID, admin); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	userRes, err := svc.List(context.Background(), ports.PaginationInput{Page: 1, Limit: 10}, regular)
	if err != nil {
		t.Fatalf("List as regular returned error: %v", err)
	}
	if userRes.Meta.Total != 1 || len(userRes.Data) != 1 || userRes.Data[0].ID != kept.ID {
		t.Errorf("regular caller sees %d rows (total %d), want only the live customer", len(userRes.Data), userRes.Meta.Total)
	}

	adminRes, err := svc.List(context.Background(), ports.PaginationInput{Page: 1, Limit: 10}, admin)
	if err != nil {
		t.Fatalf("List as admin returned error: %v", err)
	}
	if adminRes.Meta.Total != 2 || len(adminRes.Data) != 2 {
		t.Errorf("admin sees %d rows (total %d), want both including the soft-deleted one", len(adminRes.Data), adminRes.Meta.Total)
	}
}

func TestCustomerService_List_DoesNotResolveUsers(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver()
	svc := newTestService(repo, resolver)

	mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	resolver.calls = nil

	res, err := svc.List(context.Background(), ports.PaginationInput{Page: 1, Limit: 10}, regular)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(resolver.calls) != 0 {
		t.Errorf("List made %d resolver calls, want 0", len(resolver.calls))
	}

	// List rows must not serialize summary keys at all, not even null.
	raw, err := json.Marshal(res.Data[0])
	if err != nil {
		t.Fatalf("marshal list row: %v", err)
	}
	var row map[string]json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		t.Fatalf("unmarshal list row: %v", err)
	}
	for _, key := range []string{"created_by", "updated_by", "deleted_by", "created_by_id", "updated_by_id", "deleted_by_id"} {
		if _, ok := row[key]; ok {
			t.Errorf("list row serializes %q, want the key absent", key)
		}
	}
}

// ---------------------------------------------------------------------------
// FindByID / FindByCode
// ---------------------------------------------------------------------------

func TestCustomerService_FindByID_VisibilityGate(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	if _, err := svc.Remove(context.Background(), view.ID, admin); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	_, err := svc.FindByID(context.Background(), view.ID, regular)
	ce := asRPCError(t, err)
	if ce.Status != rpcerr.StatusNotFound {
		t.Errorf("regular caller: status = %d, want %d", ce.Status, rpcerr.StatusNotFound)
	}

	got, err := svc.FindByID(context.Background(), view.ID, admin)
	if err != nil {
		t.Fatalf("admin FindByID returned error: %v", err)
	}
	if got.DeletedAt == nil {
		t.Error("admin view of soft-deleted row should carry deleted_at")
	}
}

func TestCustomerService_FindByCode(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")

	got, err := svc.FindByCode(context.Background(), view.Code, regular)
	if err != nil {
		t.Fatalf("FindByCode returned error: %v", err)
	}
	if got.ID != view.ID {
		t.Errorf("FindByCode resolved %q, want %q", got.ID, view.ID)
	}

	_, err = svc.FindByCode(context.Background(), 9999, regular)
	if ce := asRPCError(t, err); ce.Status != rpcerr.StatusNotFound {
		t.Errorf("missing code: status = %d, want %d", ce.Status, rpcerr.StatusNotFound)
	}
}

// ---------------------------------------------------------------------------
// Enrichment
// ---------------------------------------------------------------------------

func TestCustomerService_Enrichment_SingleBatchedResolve(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver(
		domain.UserSummary{ID: "u-create", Username: "creator"},
		domain.UserSummary{ID: "u-update", Username: "updater"},
		domain.UserSummary{ID: "u-delete", Username: "deleter"},
	)
	svc := newTestService(repo, resolver)

	now := time.Now().UTC()
	repo.byID["c1"] = &domain.Customer{
		ID: "c1", Name: "Acme", Email: "a@b.c", Code: 1,
		CreatedAt: now, UpdatedAt: now, DeletedAt: &now,
		CreatedByID: "u-create", UpdatedByID: "u-update", DeletedByID: "u-delete",
	}

	view, err := svc.FindByID(context.Background(), "c1", admin)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	if len(resolver.calls) != 1 {
		t.Fatalf("resolver called %d times, want exactly 1", len(resolver.calls))
	}
	want := []string{"u-create", "u-delete", "u-update"} // deduplicated, sorted
	got := resolver.calls[0]
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("resolve ids = %v, want %v", got, want)
	}
	if view.CreatedBy == nil || view.UpdatedBy == nil || view.DeletedBy == nil {
		t.Errorf("summaries = %+v/%+v/%+v, want all three resolved", view.CreatedBy, view.UpdatedBy, view.DeletedBy)
	}
}

func TestCustomerService_Enrichment_DeduplicatesIDs(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver(domain.UserSummary{ID: "u-1", Username: "only"})
	svc := newTestService(repo, resolver)

	now := time.Now().UTC()
	repo.byID["c1"] = &domain.Customer{
		ID: "c1", Name: "Acme", Email: "a@b.c", Code: 1,
		CreatedAt: now, UpdatedAt: now,
		CreatedByID: "u-1", UpdatedByID: "u-1",
	}

	view, err := svc.FindByID(context.Background(), "c1", regular)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(resolver.calls) != 1 || len(resolver.calls[0]) != 1 {
		t.Fatalf("resolver calls = %v, want one call with the single deduplicated id", resolver.calls)
	}
	if view.CreatedBy == nil || view.UpdatedBy == nil || view.CreatedBy.ID != view.UpdatedBy.ID {
		t.Errorf("CreatedBy/UpdatedBy = %+v/%+v, want same resolved user", view.CreatedBy, view.UpdatedBy)
	}
}

func TestCustomerService_Enrichment_MissingSummaryBecomesNil(t *testing.T) {
	repo := newStubCustomerRepo()
	// Only two of the three audit users are known to the identity service.
	resolver := newStubUserResolver(
		domain.UserSummary{ID: "u-create", Username: "creator"},
		domain.UserSummary{ID: "u-update", Username: "updater"},
	)
	svc := newTestService(repo, resolver)

	now := time.Now().UTC()
	repo.byID["c1"] = &domain.Customer{
		ID: "c1", Name: "Acme", Email: "a@b.c", Code: 1,
		CreatedAt: now, UpdatedAt: now, DeletedAt: &now,
		CreatedByID: "u-create", UpdatedByID: "u-update", DeletedByID: "u-gone",
	}

	view, err := svc.FindByID(context.Background(), "c1", admin)
	if err != nil {
		t.Fatalf("FindByID returned error, want partial summaries without error: %v", err)
	}
	if view.CreatedBy == nil || view.UpdatedBy == nil {
		t.Error("known audit users were not resolved")
	}
	if view.DeletedBy != nil {
		t.Errorf("DeletedBy = %+v, want nil for the vanished user", view.DeletedBy)
	}
}

func TestCustomerService_Enrichment_ResolverFailureAborts(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver()
	resolver.failErr = fmt.Errorf("%w: no responders", domain.ErrUserLookupUnavailable)
	svc := newTestService(repo, resolver)

	now := time.Now().UTC()
	repo.byID["c1"] = &domain.Customer{
		ID: "c1", Name: "Acme", Email: "a@b.c", Code: 1,
		CreatedAt: now, UpdatedAt: now, CreatedByID: "u-1",
	}

	view, err := svc.FindByID(context.Background(), "c1", regular)
	if err == nil {
		t.Fatal("expected error when the identity service is unreachable")
	}
	if view != nil {
		t.Errorf("got partially enriched view %+v, want none", view)
	}
	if !errors.Is(err, domain.ErrUserLookupUnavailable) {
		t.Errorf("error = %v, want wrapped ErrUserLookupUnavailable", err)
	}
}

func TestCustomerService_Enrichment_NoAuditIDsNoResolve(t *testing.T) {
	repo := newStubCustomerRepo()
	resolver := newStubUserResolver()
	svc := newTestService(repo, resolver)

	now := time.Now().UTC()
	repo.byID["c1"] = &domain.Customer{
		ID: "c1", Name: "Acme", Email: "a@b.c", Code: 1,
		CreatedAt: now, UpdatedAt: now,
	}

	if _, err := svc.FindByID(context.Background(), "c1", regular); err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(resolver.calls) != 0 {
		t.Errorf("resolver called %d times for a record with no audit ids, want 0", len(resolver.calls))
	}
}

// ---------------------------------------------------------------------------
// Update / Remove / Restore
// ---------------------------------------------------------------------------

func TestCustomerService_Update_StampsUpdater(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")

	newName := "Acme Inc"
	updated, err := svc.Update(context.Background(), ports.UpdateCustomerInput{ID: view.ID, Name: &newName}, regular)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}
	if updated.Email != "billing@acme.test" {
		t.Errorf("Email = %q, want untouched", updated.Email)
	}
	if repo.byID[view.ID].UpdatedByID != regular.ID {
		t.Errorf("UpdatedByID = %q, want %q", repo.byID[view.ID].UpdatedByID, regular.ID)
	}
}

func TestCustomerService_Update_InvisibleRowIsNotFound(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	if _, err := svc.Remove(context.Background(), view.ID, admin); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	newName := "Sneaky"
	_, err := svc.Update(context.Background(), ports.UpdateCustomerInput{ID: view.ID, Name: &newName}, regular)
	if ce := asRPCError(t, err); ce.Status != rpcerr.StatusNotFound {
		t.Errorf("status = %d, want %d: updating an invisible row must look like a miss", ce.Status, rpcerr.StatusNotFound)
	}
}

func TestCustomerService_Remove_SetsBothDeleteStamps(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")

	removed, err := svc.Remove(context.Background(), view.ID, regular)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed.DeletedAt == nil {
		t.Error("DeletedAt not set")
	}
	if repo.byID[view.ID].DeletedByID != regular.ID {
		t.Errorf("DeletedByID = %q, want %q", repo.byID[view.ID].DeletedByID, regular.ID)
	}
}

func TestCustomerService_Remove_TwiceIsNotFound(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	if _, err := svc.Remove(context.Background(), view.ID, admin); err != nil {
		t.Fatalf("first Remove returned error: %v", err)
	}

	_, err := svc.Remove(context.Background(), view.ID, admin)
	if ce := asRPCError(t, err); ce.Status != rpcerr.StatusNotFound {
		t.Errorf("second Remove status = %d, want %d", ce.Status, rpcerr.StatusNotFound)
	}
}

func TestCustomerService_RemoveThenRestore(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	if _, err := svc.Remove(context.Background(), view.ID, admin); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	restored, err := svc.Restore(context.Background(), view.ID, admin)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Error("DeletedAt still set after restore")
	}
	if stored := repo.byID[view.ID]; stored.DeletedByID != "" || stored.DeletedAt != nil {
		t.Errorf("delete stamps = (%q, %v), want both cleared together", stored.DeletedByID, stored.DeletedAt)
	}
}

func TestCustomerService_Restore_RequiresAdmin(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(repo, newStubUserResolver())

	view := mustCreate(t, svc, regular, "Acme Corp", "billing@acme.test")
	if _, err := svc.Remove(context.Background(), view.ID, admin); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	_, err := svc.Restore(context.Background(), view.ID, regular)
	if ce := asRPCError(t, err); ce.Status != rpcerr.StatusUnauthorized {
		t.Errorf("status = %d, want %d", ce.Status, rpcerr.StatusUnauthorized)
	}
}
