package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the request body is not valid JSON or contains values of the wrong type")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the ID in the URL is not a valid UUID")
)
