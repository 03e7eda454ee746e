package out

import (
	"context"

	"todohub/internal/modules/chat/domain"
)

// Handlers receive inbound traffic. The transport invokes them from its read
// goroutine until Close releases it.
type Handlers struct {
	OnUsers      func(ids []string)
	OnMessage    func(msg domain.Message)
	OnDisconnect func(err error)
}

// Conn is one live socket. Send is fire-and-forget at this layer; delivery has
// no meaningful rejected state.
type Conn interface {
	Send(ctx context.Context, msg domain.Message) error
	Close() error
}

// Transport dials the realtime endpoint and announces selfID as part of the
// connect handshake (the join event).
type Transport interface {
	Dial(ctx context.Context, selfID string, handlers Handlers) (Conn, error)
}
