package service

import "errors"

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnknownEmail       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
)

// ValidationError carries the reason a request body was rejected; handlers
// relay it verbatim as a 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
