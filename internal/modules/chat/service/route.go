package service

import "todohub/internal/modules/chat/domain"

// Router decides where an inbound message lands. Pure; the overlay store owns
// the state it acts on.
type Router struct{}

// Route classifies msg against the local identity and the active counterpart.
// A message between self and the active counterpart (either direction) belongs
// to the open conversation; anything else addressed to self counts as unread
// for its sender; the rest is dropped.
func (Router) Route(msg domain.Message, selfID, activeID string) domain.Disposition {
	if activeID != "" && belongsToPair(msg, selfID, activeID) {
		return domain.AppendToActive
	}
	if msg.ReceiverID == selfID {
		return domain.CountUnread
	}
	return domain.Drop
}

func belongsToPair(msg domain.Message, selfID, activeID string) bool {
	if msg.SenderID == activeID && msg.ReceiverID == selfID {
		return true
	}
	return msg.SenderID == selfID && msg.ReceiverID == activeID
}
