// Package rpcerr defines the classified error contract returned to RPC
// callers and the normalizer that enforces it at the service boundary.
//
// Errors created through the constructors in this package are "classified":
// they were raised deliberately and their status and message are safe to
// expose. Anything else reaching Normalize is an internal failure — it is
// logged in full and replaced by a generic BadRequest so that no store or
// stack detail ever crosses the service boundary.
package rpcerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/commerceos/customer-system/internal/core/domain"
)

// Status values form the fixed taxonomy exposed to callers.
const (
	StatusBadRequest   = http.StatusBadRequest
	StatusUnauthorized = http.StatusUnauthorized
	StatusNotFound     = http.StatusNotFound
	StatusInternal     = http.StatusInternalServerError
)

// genericMessage is what callers see for any failure that was not raised
// deliberately.
const genericMessage = "unexpected error, check logs"

// Error is a classified RPC error. The classified flag is unexported on
// purpose: only constructors in this package can set it, so an Error
// decoded off the wire or built by hand does not pass as already handled.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	classified bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Status, e.Message)
}

// New returns a classified error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message, classified: true}
}

func BadRequest(message string) *Error   { return New(StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(StatusUnauthorized, message) }
func NotFound(message string) *Error     { return New(StatusNotFound, message) }
func Internal(message string) *Error     { return New(StatusInternal, message) }

// Normalize maps any failure into a classified Error. Classified errors
// pass through unchanged, so normalizing twice is a no-op; everything else
// is logged with its full cause and masked behind the generic message.
// Call it exactly once, at the outermost reply boundary.
func Normalize(err error, log zerolog.Logger) *Error {
	var ce *Error
	if errors.As(err, &ce) && ce.classified {
		return ce
	}

	ev := log.Error().Err(err)
	if errors.Is(err, domain.ErrUserLookupUnavailable) {
		// Distinguished internally for alerting, masked externally.
		ev = ev.Str("reason", "upstream_unavailable")
	}
	ev.Msg("unclassified failure normalized")

	return &Error{Status: StatusBadRequest, Message: genericMessage, classified: true}
}
