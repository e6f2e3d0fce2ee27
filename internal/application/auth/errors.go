package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrIncorrectPassword     = errors.New("Incorrect password")
	ErrUsernameTaken         = errors.New("Username already taken")
	ErrEmailRegistered       = errors.New("Email already registered")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)
