package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"todohub/internal/modules/chat/domain"
	chatout "todohub/internal/modules/chat/port/out"
)

// WebSocketTransport speaks the backend's realtime event vocabulary over a
// single WebSocket: outbound join / sendMessage, inbound updateUsers /
// receiveMessage, each framed as {"event": ..., "data": ...}.
type WebSocketTransport struct {
	url    string
	client *http.Client
}

// NewWebSocketTransport dials url with client, which carries the same cookie
// jar as the REST adapters so the socket is authenticated as the session user.
func NewWebSocketTransport(url string, client *http.Client) chatout.Transport {
	return &WebSocketTransport{url: url, client: client}
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type messagePayload struct {
	ID         string    `json:"id,omitempty"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (t *WebSocketTransport) Dial(ctx context.Context, selfID string, handlers chatout.Handlers) (chatout.Conn, error) {
	ws, _, err := websocket.Dial(ctx, t.url, &websocket.DialOptions{HTTPClient: t.client})
	if err != nil {
		return nil, fmt.Errorf("dial socket: %w", err)
	}

	readCtx, cancel := context.WithCancel(context.Background())
	conn := &wsConn{ws: ws, cancel: cancel}

	if err := conn.writeFrame(ctx, "join", selfID); err != nil {
		cancel()
		_ = ws.Close(websocket.StatusProtocolError, "join failed")
		return nil, fmt.Errorf("announce identity: %w", err)
	}

	go conn.readLoop(readCtx, handlers)
	return conn, nil
}

type wsConn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
}

func (c *wsConn) Send(ctx context.Context, msg domain.Message) error {
	return c.writeFrame(ctx, "sendMessage", messagePayload{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
	})
}

func (c *wsConn) Close() error {
	c.cancel()
	return c.ws.Close(websocket.StatusNormalClosure, "client closed")
}

func (c *wsConn) writeFrame(ctx context.Context, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	raw, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return c.ws.Write(ctx, websocket.MessageText, raw)
}

// readLoop owns the socket's read side until Close cancels it. Handlers run on
// this goroutine; the overlay store does its own locking.
func (c *wsConn) readLoop(ctx context.Context, handlers chatout.Handlers) {
	for {
		_, raw, err := c.ws.Read(ctx)
		if err != nil {
			if handlers.OnDisconnect != nil {
				if ctx.Err() != nil {
					// Deliberate teardown, not a transport failure.
					handlers.OnDisconnect(nil)
				} else {
					handlers.OnDisconnect(err)
				}
			}
			return
		}
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		switch f.Event {
		case "updateUsers":
			var ids []string
			if err := json.Unmarshal(f.Data, &ids); err == nil && handlers.OnUsers != nil {
				handlers.OnUsers(ids)
			}
		case "receiveMessage":
			var p messagePayload
			if err := json.Unmarshal(f.Data, &p); err == nil && handlers.OnMessage != nil {
				handlers.OnMessage(domain.Message{
					ID:         p.ID,
					SenderID:   p.SenderID,
					ReceiverID: p.ReceiverID,
					Text:       p.Text,
					CreatedAt:  p.CreatedAt,
				})
			}
		}
	}
}
