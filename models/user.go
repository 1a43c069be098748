// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account that owns conversations, notes and usage records.
type User struct {
	// UserID is the internal identifier. It never leaves the server.
	UserID int64 `json:"-"`

	// Email is the unique credential identifier used at login.
	Email string `json:"email"`

	// Name is the display name shown in the client.
	Name string `json:"name"`

	// Password carries the plaintext password on register/login requests only.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
