package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"todohub/internal/modules/chat/domain"
	"todohub/internal/modules/chat/dto"
	chatin "todohub/internal/modules/chat/port/in"
	chatout "todohub/internal/modules/chat/port/out"
	"todohub/internal/modules/chat/service"
	"todohub/internal/platform/clock"
	apperrors "todohub/internal/platform/errors"
	"todohub/internal/platform/id"
)

// Overlay is the presence/messaging store. Online identities are replaced
// wholesale on every presence event. Only the active conversation's messages
// are kept; switching counterparts discards them (deliberate, see DESIGN.md).
type Overlay struct {
	router    service.Router
	transport chatout.Transport
	clock     clock.Clock
	ids       id.Generator

	mu            sync.RWMutex
	state         domain.ConnState
	selfID        string
	conn          chatout.Conn
	online        []string
	activeID      string
	messages      []domain.Message
	unread        map[string]int
	disconnectErr string
}

func NewOverlay(router service.Router, transport chatout.Transport, clk clock.Clock, ids id.Generator) chatin.Usecase {
	return &Overlay{
		router:    router,
		transport: transport,
		clock:     clk,
		ids:       ids,
		state:     domain.StateDisconnected,
		unread:    map[string]int{},
	}
}

func (o *Overlay) Connect(ctx context.Context, selfID string) error {
	o.mu.Lock()
	if selfID == "" {
		o.mu.Unlock()
		return apperrors.ErrInvalidInput
	}
	if o.state != domain.StateDisconnected {
		o.mu.Unlock()
		return nil
	}
	o.state = domain.StateConnecting
	o.selfID = selfID
	o.disconnectErr = ""
	o.mu.Unlock()

	conn, err := o.transport.Dial(ctx, selfID, chatout.Handlers{
		OnUsers:      o.replaceOnline,
		OnMessage:    o.receive,
		OnDisconnect: o.dropConnection,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = domain.StateDisconnected
		return err
	}
	o.conn = conn
	o.state = domain.StateConnected
	return nil
}

func (o *Overlay) Open(counterpartID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if counterpartID == o.activeID {
		o.unread[counterpartID] = 0
		return
	}
	o.activeID = counterpartID
	o.messages = nil
	if counterpartID != "" {
		o.unread[counterpartID] = 0
	}
}

func (o *Overlay) Send(ctx context.Context, text string) (dto.MessageOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dto.MessageOutput{}, nil
	}

	o.mu.Lock()
	if o.state != domain.StateConnected || o.conn == nil {
		o.mu.Unlock()
		return dto.MessageOutput{}, apperrors.ErrNotConnected
	}
	if o.activeID == "" {
		o.mu.Unlock()
		return dto.MessageOutput{}, apperrors.ErrInvalidInput
	}
	msg := domain.Message{
		ID:         o.ids.New(),
		SenderID:   o.selfID,
		ReceiverID: o.activeID,
		Text:       text,
		CreatedAt:  o.clock.Now(),
	}
	conn := o.conn
	o.mu.Unlock()

	// Fire-and-forget emit, then the optimistic local append. A write error
	// means the socket is dead; the read loop's OnDisconnect settles the
	// state, and the record still shows in the local log.
	if err := conn.Send(ctx, msg); err != nil {
		slog.Debug("socket send failed", "error", err)
	}

	o.mu.Lock()
	if o.activeID == msg.ReceiverID {
		o.messages = append(o.messages, msg)
	}
	o.mu.Unlock()
	return toMessageOutput(msg), nil
}

func (o *Overlay) Close() {
	o.mu.Lock()
	conn := o.conn
	o.conn = nil
	o.state = domain.StateDisconnected
	o.online = nil
	o.activeID = ""
	o.messages = nil
	o.unread = map[string]int{}
	o.mu.Unlock()
	if conn != nil {
		if err := conn.Close(); err != nil {
			slog.Debug("socket close failed", "error", err)
		}
	}
}

func (o *Overlay) Snapshot() dto.OverlayOutput {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := dto.OverlayOutput{
		State:         string(o.state),
		SelfID:        o.selfID,
		ActiveID:      o.activeID,
		Online:        make([]string, len(o.online)),
		Messages:      make([]dto.MessageOutput, 0, len(o.messages)),
		Unread:        make(map[string]int, len(o.unread)),
		DisconnectErr: o.disconnectErr,
	}
	copy(out.Online, o.online)
	for _, msg := range o.messages {
		out.Messages = append(out.Messages, toMessageOutput(msg))
	}
	for id, n := range o.unread {
		if n > 0 {
			out.Unread[id] = n
		}
	}
	return out
}

func (o *Overlay) replaceOnline(ids []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.online = append([]string(nil), ids...)
}

func (o *Overlay) receive(msg domain.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.router.Route(msg, o.selfID, o.activeID) {
	case domain.AppendToActive:
		o.messages = append(o.messages, msg)
	case domain.CountUnread:
		o.unread[msg.SenderID]++
	}
}

func (o *Overlay) dropConnection(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conn = nil
	o.state = domain.StateDisconnected
	if err != nil {
		o.disconnectErr = err.Error()
	}
}

func toMessageOutput(msg domain.Message) dto.MessageOutput {
	return dto.MessageOutput{ID: msg.ID, SenderID: msg.SenderID, ReceiverID: msg.ReceiverID, Text: msg.Text, CreatedAt: msg.CreatedAt}
}
