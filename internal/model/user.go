package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password is never kept in plain text; PasswordHash holds
// a bcrypt digest and is excluded from JSON output so it can never
// leak through an API response.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown to other users.
//  Email        – unique, lowercased email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	Name         string    `json:"name"`      // users.name
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
	UpdatedAt    time.Time `json:"-"`         // users.updated_at
}
