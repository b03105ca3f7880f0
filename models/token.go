package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose distinguishes session tokens from password-reset tokens so
// that one can never be replayed as the other.
type TokenPurpose string

const (
	// PurposeSession marks bearer tokens accepted by protected routes.
	PurposeSession TokenPurpose = "session"
	// PurposePasswordReset marks short-lived tokens handed to the reset notifier.
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Claims is the JWT claim set issued by the auth service.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose is the private "pur" claim.
	Purpose TokenPurpose `json:"pur"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent to the client.
// UserID is the parsed "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string `json:"-"`

	UserID int64 `json:"-"`

	Purpose TokenPurpose `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	if t.Token == nil {
		return 0, fmt.Errorf("error extracting UserID from token: token is not parsed")
	}

	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
