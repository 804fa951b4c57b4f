// Package uuid wraps github.com/google/uuid so that IDs can be bound from
// URL parameters, query strings and JSON bodies where an empty value means
// "not set".
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// IsNil reports if the UUID is the zero value.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}

// UnmarshalParam parses URI and query parameters. An empty
// parameter is the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	return u.parse(p)
}

// UnmarshalText overrides the google/uuid implementation so that an empty
// JSON string is decoded to the Nil UUID instead of failing.
func (u *UUID) UnmarshalText(data []byte) error {
	return u.parse(string(data))
}

func (u *UUID) parse(s string) error {
	if s == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(s)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
