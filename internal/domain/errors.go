package domain

import "errors" // Sentinel errors

// Error taxonomy shared by every layer; the API maps these to status codes
var (
	ErrValidation         = errors.New("validation failed")              // Missing/malformed field or unknown enum value
	ErrUnauthenticated    = errors.New("unauthenticated")                // Missing, invalid or expired token
	ErrMalformedHeader    = errors.New("malformed authorization header") // Header is not "Bearer <token>"
	ErrForbidden          = errors.New("forbidden")                      // Ownership mismatch
	ErrNotFound           = errors.New("not found")                      // No such user or transaction
	ErrConflict           = errors.New("already exists")                 // Duplicate registration
	ErrInvalidCredentials = errors.New("invalid credentials")            // Password mismatch
)
