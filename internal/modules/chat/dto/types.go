package dto

import "time"

type MessageOutput struct {
	ID         string
	SenderID   string
	ReceiverID string
	Text       string
	CreatedAt  time.Time
}

type OverlayOutput struct {
	State         string
	SelfID        string
	Online        []string
	ActiveID      string
	Messages      []MessageOutput
	Unread        map[string]int
	DisconnectErr string
}
