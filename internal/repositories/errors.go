package repositories

import "errors"

// Sentinel errors returned by the repositories. Handlers map these onto
// status codes with errors.Is, so wrapped variants still match.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("sku already exists")
)
