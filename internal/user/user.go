// Copyright (c) 2026 Savora. All rights reserved.

package user

import (
	"time"

	"github.com/savora-app/savora/internal/access"
)

// # Field Names

// Field constants keep validation error details consistent across handlers.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldGender          = "gender"
	FieldAvatar          = "avatar"
)

// # Gender

// Gender is the declared profile gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// # Entity

// User is a registered member account.
//
// PasswordHash and Role never serialize; profile payloads expose only the
// public fields.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Gender       Gender      `json:"gender"`
	AvatarURL    string      `json:"avatar"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Session pairs a freshly issued token with the account it belongs to.
// It is the payload of every operation that (re-)issues credentials.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
