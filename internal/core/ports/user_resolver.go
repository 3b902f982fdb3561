package ports

import (
	"context"

	"github.com/commerceos/customer-system/internal/core/domain"
)

// UserResolver batch-resolves opaque user ids into display-ready summaries
// by calling the identity service.
//
// Resolution is best-effort: ids with no match are simply absent from the
// result, never an error. A timeout or unreachable identity service must
// surface as an error wrapping domain.ErrUserLookupUnavailable so the
// enclosing operation aborts instead of returning a half-enriched record.
type UserResolver interface {
	ResolveMany(ctx context.Context, ids []string, caller domain.User) ([]domain.UserSummary, error)
}
