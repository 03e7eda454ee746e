package domain

import "time"

// ConnState is the overlay's connection lifecycle. There is no automatic
// reconnect; a fresh dial happens only when the owning view remounts with a
// known identity.
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
)

// Message is one direct message between two identities. ID is assigned
// locally for outbound records; inbound records carry whatever the server set.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Text       string
	CreatedAt  time.Time
}

// Disposition says what the overlay does with an inbound message.
type Disposition int

const (
	Drop Disposition = iota
	AppendToActive
	CountUnread
)
