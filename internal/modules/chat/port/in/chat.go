package in

import (
	"context"

	"todohub/internal/modules/chat/dto"
)

type Usecase interface {
	// Connect dials the socket and announces the local identity. No-op when
	// already connecting or connected.
	Connect(ctx context.Context, selfID string) error
	// Open makes counterpartID the active conversation, discarding the
	// previous conversation's messages and zeroing its unread counter.
	Open(counterpartID string)
	// Send emits a message to the active counterpart and appends it locally
	// immediately (the one optimistic path in the client).
	Send(ctx context.Context, text string) (dto.MessageOutput, error)
	// Close tears the socket down and clears ephemeral state. Idempotent.
	Close()

	Snapshot() dto.OverlayOutput
}
