// Package rpc is the message endpoint of the customer service: it
// subscribes the customer.* request/reply patterns on NATS, validates
// payload shape, dispatches to the lifecycle service and replies with the
// standard envelope. The exception normalizer runs exactly once here, in
// the reply path.
package rpc

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/commerceos/customer-system/internal/api/metrics"
	"github.com/commerceos/customer-system/internal/core/ports"
	"github.com/commerceos/customer-system/internal/core/rpcerr"
)

// queueGroup makes horizontally scaled replicas share each pattern.
const queueGroup = "customer-service"

// Inbound message patterns.
const (
	PatternHealth  = "customer.health"
	PatternCreate  = "customer.create"
	PatternAll     = "customer.all"
	PatternByID    = "customer.id"
	PatternByCode  = "customer.code"
	PatternUpdate  = "customer.update"
	PatternRemove  = "customer.remove"
	PatternRestore = "customer.restore"
)

// envelope is the reply shape for every pattern: data on success, a
// classified error otherwise, never both.
type envelope struct {
	Data  any           `json:"data,omitempty"`
	Error *rpcerr.Error `json:"error,omitempty"`
}

// handlerFunc decodes one payload and runs the business operation.
type handlerFunc func(ctx context.Context, data []byte) (any, error)

// Server dispatches inbound RPC calls to the customer lifecycle service.
type Server struct {
	conn     *nats.Conn
	service  ports.CustomerService
	validate *payloadValidator
	logger   zerolog.Logger
	subs     []*nats.Subscription
}

func NewServer(conn *nats.Conn, service ports.CustomerService, logger zerolog.Logger) *Server {
	return &Server{
		conn:     conn,
		service:  service,
		validate: newPayloadValidator(),
		logger:   logger,
	}
}

// Subscribe registers all patterns on the shared queue group. Each inbound
// message is served on its own goroutine; there is no shared mutable state
// between calls.
func (s *Server) Subscribe() error {
	handlers := map[string]handlerFunc{
		PatternHealth:  s.health,
		PatternCreate:  s.create,
		PatternAll:     s.list,
		PatternByID:    s.findByID,
		PatternByCode:  s.findByCode,
		PatternUpdate:  s.update,
		PatternRemove:  s.remove,
		PatternRestore: s.restore,
	}

	for pattern, h := range handlers {
		sub, err := s.conn.QueueSubscribe(pattern, queueGroup, s.wrap(pattern, h))
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
	}

	s.logger.Info().Int("patterns", len(handlers)).Str("queue", queueGroup).Msg("rpc endpoint subscribed")
	return nil
}

// Drain unsubscribes and lets in-flight handlers finish.
func (s *Server) Drain() error {
	return s.conn.Drain()
}

func (s *Server) wrap(pattern string, h handlerFunc) nats.MsgHandler {
	return func(msg *nats.Msg) {
		go func() {
			start := time.Now()
			metrics.RPCRequestsTotal.WithLabelValues(pattern).Inc()

			result, err := h(context.Background(), msg.Data)

			if err := msg.Respond(s.encodeReply(pattern, result, err)); err != nil {
				s.logger.Error().Err(err).Str("pattern", pattern).Msg("failed to publish reply")
			}

			metrics.RPCRequestDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		}()
	}
}

// encodeReply builds the wire envelope for one handled message: data on
// success, the classified error on failure. The exception normalizer runs
// here and nowhere else, so every failure crosses it exactly once.
func (s *Server) encodeReply(pattern string, result any, herr error) []byte {
	var env envelope
	if herr != nil {
		ce := rpcerr.Normalize(herr, s.logger.With().Str("pattern", pattern).Logger())
		metrics.RPCErrorsTotal.WithLabelValues(pattern, strconv.Itoa(ce.Status)).Inc()
		env = envelope{Error: ce}
	} else {
		env = envelope{Data: result}
	}

	payload, err := json.Marshal(env)
	if err != nil {
		s.logger.Error().Err(err).Str("pattern", pattern).Msg("failed to marshal reply")
		payload, _ = json.Marshal(envelope{Error: rpcerr.Internal("reply encoding failed")})
	}
	return payload
}
