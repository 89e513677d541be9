package domain

import "time"

// User is the domain entity for an identity. Email is the stable key;
// there is no credential, login is a mocked upsert.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	LastLogin time.Time
	CreatedAt time.Time
}

// UserStat is a user plus aggregates derived from their tasks.
// Aggregates are recomputed on each admin query, never stored.
type UserStat struct {
	User
	TotalTasks     int
	CompletedTasks int
	TotalSpent     float64
}
