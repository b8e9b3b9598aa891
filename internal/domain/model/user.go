package model

import "errors"

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an authenticated operator of the service.
type User struct {
	Username    string
	DisplayName string
	Roles       []string
}
