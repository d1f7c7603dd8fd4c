// Copyright (c) 2026 Savora. All rights reserved.

// Package sec provides cryptographic primitives: password hashing and the
// session token codec.
//
// # Architecture
//
// This package isolates security-sensitive code from domain logic. The
// codec is injected into the access resolver and the user service through
// narrow interfaces, which keeps both sides mockable in tests.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure modes.
//
// Both are always reported, never silently accepted. The access resolver
// collapses them into a single Unauthenticated outcome at the HTTP
// boundary, but callers closer to the codec (tests, diagnostics) can still
// tell them apart.
var (
	// ErrTokenExpired marks a structurally valid token whose lifetime has
	// passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenMalformed marks a signature mismatch or structural corruption.
	ErrTokenMalformed = errors.New("sec: token malformed")
)

// TokenCodec issues and verifies signed, time-limited session tokens.
//
// # Statelessness
//
// A token embeds only the identity id and an expiry instant. There is no
// server-side session or revocation list: validity is solely signature +
// expiry, so a token survives password and role changes for its full
// lifetime. That staleness window is a documented property of the system.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a codec signing with HMAC-SHA256.
func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}

	return &TokenCodec{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Issue produces a signed token embedding identityID with
// expiry = now + configured lifetime.
func (codec *TokenCodec) Issue(identityID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   identityID,
		Issuer:    codec.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(codec.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature and expiry and returns the embedded identity id.
//
// # Returns
//   - the identity id on success
//   - [ErrTokenExpired] for a valid-but-stale token
//   - [ErrTokenMalformed] for anything else (bad signature, wrong
//     algorithm, structural corruption, missing subject)
func (codec *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	}, jwt.WithIssuer(codec.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}
