package dto

import "time"

type TodoOutput struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
}

type ListOutput struct {
	Items     []TodoOutput
	Loading   bool
	LastError string
}

type UpdateInput struct {
	ID        string
	Title     string
	Completed bool
}

type StatsOutput struct {
	Total     int
	Completed int
	Active    int
	Percent   int
}
