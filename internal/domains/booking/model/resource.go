package model

import "fmt"

// ResourceRef identifies the physical resource a booking occupies.
// It is either ByID or ByName; callers switch on the concrete type.
type ResourceRef interface {
	// LockKey is stable per resource and used to serialize writes.
	LockKey() string
	isResourceRef()
}

type ByID struct {
	ID string
}

func (ByID) isResourceRef() {}

func (r ByID) LockKey() string {
	return "id:" + r.ID
}

// ByName is the legacy key for bookings without a resource id. An empty Kind
// matches the name in any kind.
type ByName struct {
	Kind ResourceKind
	Name string
}

func (ByName) isResourceRef() {}

func (r ByName) LockKey() string {
	return fmt.Sprintf("name:%s:%s", r.Kind, r.Name)
}
