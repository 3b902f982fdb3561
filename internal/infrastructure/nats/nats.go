package nats

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Config captures the settings for the NATS connection shared by the
// inbound RPC endpoint and the outbound identity resolver.
type Config struct {
	Servers []string
	Name    string
}

// Connect establishes a NATS connection that keeps reconnecting for the
// lifetime of the process.
func Connect(cfg Config) (*nats.Conn, error) {
	conn, err := nats.Connect(strings.Join(cfg.Servers, ","),
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}
