// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an issued or parsed session JWT.
//
// The subject claim carries the numeric user id; UserID caches it after
// parsing so handlers do not re-parse the claim.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact header.payload.signature form.
	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the signed token.
func (t *Token) String() string {
	return t.SignedString
}

// Bearer returns the value of an Authorization header carrying the token.
func (t *Token) Bearer() string {
	return "Bearer " + t.SignedString
}
