// Package identity hands out the opaque player identifiers clients keep in a
// cookie and present on every join.
package identity

import "github.com/google/uuid"

// Allocator creates player ids.
type Allocator interface {
	NewPlayerID() string
}

type uuidAllocator struct{}

// New returns an Allocator producing random (version 4) UUIDs.
func New() Allocator {
	return uuidAllocator{}
}

func (uuidAllocator) NewPlayerID() string {
	return uuid.NewString()
}

// Valid reports whether id looks like something New could have produced.
// Clients that bring their own id are not rejected by the rooms, this is only
// used to decide whether a cookie must be replaced.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
