package service_test

import (
	"testing"

	"todohub/internal/modules/chat/domain"
	"todohub/internal/modules/chat/service"
)

func TestRoute(t *testing.T) {
	t.Parallel()
	var r service.Router

	cases := []struct {
		name     string
		msg      domain.Message
		selfID   string
		activeID string
		want     domain.Disposition
	}{
		{
			name:     "inbound from active counterpart",
			msg:      domain.Message{SenderID: "peer", ReceiverID: "self"},
			selfID:   "self",
			activeID: "peer",
			want:     domain.AppendToActive,
		},
		{
			name:     "own echo within active pair",
			msg:      domain.Message{SenderID: "self", ReceiverID: "peer"},
			selfID:   "self",
			activeID: "peer",
			want:     domain.AppendToActive,
		},
		{
			name:     "inbound from another sender",
			msg:      domain.Message{SenderID: "other", ReceiverID: "self"},
			selfID:   "self",
			activeID: "peer",
			want:     domain.CountUnread,
		},
		{
			name:     "inbound with no open conversation",
			msg:      domain.Message{SenderID: "peer", ReceiverID: "self"},
			selfID:   "self",
			activeID: "",
			want:     domain.CountUnread,
		},
		{
			name:     "not addressed to self",
			msg:      domain.Message{SenderID: "other", ReceiverID: "stranger"},
			selfID:   "self",
			activeID: "peer",
			want:     domain.Drop,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Route(tc.msg, tc.selfID, tc.activeID); got != tc.want {
				t.Fatalf("got disposition %d, want %d", got, tc.want)
			}
		})
	}
}
