package staticcreds

// Package staticcreds provides a config-driven CredentialValidator backed by a
// single allow-listed email/password pair.

import (
	"crypto/subtle"
	"errors"
)

// Config holds the one credential pair the validator accepts.
// Both fields are required.
type Config struct {
	Email    string
	Password string
}

// Validator implements ports.CredentialValidator against a fixed pair.
// It is safe for concurrent use; its fields never change after construction.
type Validator struct {
	email    []byte
	password []byte
}

// NewValidator constructs a Validator from Config.
func NewValidator(cfg Config) (*Validator, error) {
	if cfg.Email == "" {
		return nil, errors.New("static credentials: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("static credentials: Password is required")
	}
	return &Validator{
		email:    []byte(cfg.Email),
		password: []byte(cfg.Password),
	}, nil
}

// Validate reports whether both fields exactly equal the configured pair.
// Both comparisons always run so timing does not reveal which field differed.
func (v *Validator) Validate(email, password string) bool {
	if v == nil {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), v.email)
	passwordOK := subtle.ConstantTimeCompare([]byte(password), v.password)
	return emailOK&passwordOK == 1
}
