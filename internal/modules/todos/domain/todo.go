package domain

import "time"

// Todo mirrors one server-owned task. ID is assigned by the server and
// immutable; only Title and Completed ever change.
type Todo struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// Filter selects a status-based view of the collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Stats are derived from the collection, never stored.
type Stats struct {
	Total     int
	Completed int
	Active    int
	Percent   int
}
