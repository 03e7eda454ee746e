package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"todohub/internal/modules/chat/adapter/out"
	"todohub/internal/modules/chat/domain"
	chatout "todohub/internal/modules/chat/port/out"
)

type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// echoServer accepts one socket, records the join identity and every
// sendMessage, and pushes the frames queued on push to the client.
type echoServer struct {
	t      *testing.T
	joined chan string
	sent   chan wireFrame
	push   chan wireFrame
}

func newEchoServer(t *testing.T) *echoServer {
	return &echoServer{
		t:      t,
		joined: make(chan string, 1),
		sent:   make(chan wireFrame, 8),
		push:   make(chan wireFrame, 8),
	}
}

func (s *echoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.t.Errorf("accept: %v", err)
		return
	}
	defer func() { _ = ws.Close(websocket.StatusNormalClosure, "") }()
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	go func() {
		for f := range s.push {
			raw, _ := json.Marshal(f)
			if err := ws.Write(ctx, websocket.MessageText, raw); err != nil {
				return
			}
		}
	}()

	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			return
		}
		var f wireFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			s.t.Errorf("decode frame: %v", err)
			continue
		}
		if f.Event == "join" {
			var id string
			_ = json.Unmarshal(f.Data, &id)
			s.joined <- id
			continue
		}
		s.sent <- f
	}
}

func dialTest(t *testing.T, handlers chatout.Handlers) (*echoServer, chatout.Conn) {
	t.Helper()
	srv := newEchoServer(t)
	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)
	t.Cleanup(func() { close(srv.push) })

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	transport := out.NewWebSocketTransport(wsURL, httpSrv.Client())
	conn, err := transport.Dial(context.Background(), "self", handlers)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return srv, conn
}

func TestDialAnnouncesIdentity(t *testing.T) {
	srv, conn := dialTest(t, chatout.Handlers{})
	defer func() { _ = conn.Close() }()

	select {
	case id := <-srv.joined:
		if id != "self" {
			t.Fatalf("expected join with self, got %q", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the join frame")
	}
}

func TestSendEmitsMessageFrame(t *testing.T) {
	srv, conn := dialTest(t, chatout.Handlers{})
	defer func() { _ = conn.Close() }()
	<-srv.joined

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	err := conn.Send(context.Background(), domain.Message{
		ID: "m1", SenderID: "self", ReceiverID: "peer", Text: "hello", CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case f := <-srv.sent:
		if f.Event != "sendMessage" {
			t.Fatalf("expected sendMessage, got %q", f.Event)
		}
		var payload struct {
			SenderID   string `json:"senderId"`
			ReceiverID string `json:"receiverId"`
			Text       string `json:"text"`
		}
		if err := json.Unmarshal(f.Data, &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.SenderID != "self" || payload.ReceiverID != "peer" || payload.Text != "hello" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the message frame")
	}
}

func TestInboundFramesReachHandlers(t *testing.T) {
	users := make(chan []string, 1)
	messages := make(chan domain.Message, 1)
	srv, conn := dialTest(t, chatout.Handlers{
		OnUsers:   func(ids []string) { users <- ids },
		OnMessage: func(msg domain.Message) { messages <- msg },
	})
	defer func() { _ = conn.Close() }()
	<-srv.joined

	usersData, _ := json.Marshal([]string{"u1", "u2"})
	srv.push <- wireFrame{Event: "updateUsers", Data: usersData}
	msgData, _ := json.Marshal(map[string]any{"id": "m9", "senderId": "peer", "receiverId": "self", "text": "hi"})
	srv.push <- wireFrame{Event: "receiveMessage", Data: msgData}

	select {
	case ids := <-users:
		if len(ids) != 2 || ids[0] != "u1" {
			t.Fatalf("unexpected presence payload: %v", ids)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for updateUsers")
	}
	select {
	case msg := <-messages:
		if msg.ID != "m9" || msg.SenderID != "peer" || msg.Text != "hi" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for receiveMessage")
	}
}

func TestCloseSignalsDeliberateTeardown(t *testing.T) {
	disconnects := make(chan error, 1)
	srv, conn := dialTest(t, chatout.Handlers{
		OnDisconnect: func(err error) { disconnects <- err },
	})
	<-srv.joined

	if err := conn.Close(); err != nil {
		t.Logf("close: %v", err)
	}
	select {
	case err := <-disconnects:
		if err != nil {
			t.Fatalf("a deliberate close must not report an error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the disconnect callback")
	}
}
