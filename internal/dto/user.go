package dto

import "time"

// SyncUserRequest is the JSON body for POST /users/sync (login upsert).
type SyncUserRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=120"`
	Email  string `json:"email" binding:"required,email"`
	Avatar string `json:"avatar" binding:"omitempty,url"`
}

// User is the wire representation of an identity.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// UserStat is a user with task aggregates, as returned by the admin listing.
type UserStat struct {
	User
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	TotalSpent     float64 `json:"totalSpent"`
}

// ErrorResponse is the failure body for every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}
