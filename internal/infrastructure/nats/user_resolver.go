package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/commerceos/customer-system/internal/api/metrics"
	"github.com/commerceos/customer-system/internal/core/domain"
	redisdb "github.com/commerceos/customer-system/internal/infrastructure/db/redis"
)

// subjectFindUserIDs is the identity service's batch-resolve pattern.
const subjectFindUserIDs = "user.find.ids"

const defaultResolveTimeout = 3 * time.Second

// UserResolver resolves user ids into summaries over NATS request/reply,
// with an optional Redis read-through cache in front of the remote call.
// Cache failures degrade to a remote lookup; remote failures abort.
type UserResolver struct {
	conn    *nats.Conn
	cache   *redisdb.SummaryCache
	timeout time.Duration
	logger  zerolog.Logger
}

// NewUserResolver creates a UserResolver. cache may be nil to disable
// caching; a non-positive timeout falls back to the default bounded wait.
func NewUserResolver(conn *nats.Conn, cache *redisdb.SummaryCache, timeout time.Duration, logger zerolog.Logger) *UserResolver {
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &UserResolver{conn: conn, cache: cache, timeout: timeout, logger: logger}
}

type resolveRequest struct {
	IDs  []string    `json:"ids"`
	User domain.User `json:"user"`
}

type resolveReply struct {
	Data  []domain.UserSummary `json:"data"`
	Error *struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResolveMany batch-resolves ids. Best-effort: ids the identity service
// does not know are absent from the result. An unreachable or timed-out
// identity service surfaces as domain.ErrUserLookupUnavailable.
func (r *UserResolver) ResolveMany(ctx context.Context, ids []string, caller domain.User) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cached, missing := r.fromCache(ctx, ids)
	if len(missing) == 0 {
		metrics.UserResolvesTotal.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}

	fetched, err := r.request(ctx, missing, caller)
	if err != nil {
		metrics.UserResolvesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.UserResolvesTotal.WithLabelValues("ok").Inc()

	if r.cache != nil && len(fetched) > 0 {
		if err := r.cache.SetMany(ctx, fetched); err != nil {
			r.logger.Warn().Err(err).Msg("failed to cache user summaries")
		}
	}

	return append(cached, fetched...), nil
}

// fromCache returns cached summaries and the ids still to fetch. Any cache
// failure is logged and treated as a full miss.
func (r *UserResolver) fromCache(ctx context.Context, ids []string) ([]domain.UserSummary, []string) {
	if r.cache == nil {
		return nil, ids
	}

	hits, missing, err := r.cache.GetMany(ctx, ids)
	if err != nil {
		r.logger.Warn().Err(err).Msg("user summary cache unavailable")
		return nil, ids
	}

	summaries := make([]domain.UserSummary, 0, len(hits))
	for _, id := range ids {
		if u, ok := hits[id]; ok {
			summaries = append(summaries, u)
		}
	}
	return summaries, missing
}

func (r *UserResolver) request(ctx context.Context, ids []string, caller domain.User) ([]domain.UserSummary, error) {
	payload, err := json.Marshal(resolveRequest{IDs: ids, User: caller})
	if err != nil {
		return nil, fmt.Errorf("marshal resolve request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	msg, err := r.conn.RequestWithContext(reqCtx, subjectFindUserIDs, payload)
	if err != nil {
		if errors.Is(err, nats.ErrNoResponders) || errors.Is(err, nats.ErrConnectionClosed) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUserLookupUnavailable, err)
		}
		return nil, fmt.Errorf("resolve users request: %w", err)
	}

	var reply resolveReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return nil, fmt.Errorf("decode resolve reply: %w", err)
	}
	if reply.Error != nil {
		return nil, fmt.Errorf("user service error %d: %s", reply.Error.Status, reply.Error.Message)
	}

	return reply.Data, nil
}
