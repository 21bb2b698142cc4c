package signoff

import "errors"

var (
	ErrNotAuthorized = errors.New("not authorized")
	ErrAlreadySigned = errors.New("role already signed")
	ErrNotFound      = errors.New("not found")
)
