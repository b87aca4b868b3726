package storage

//go:generate mockery --name=Storage --output=mocks

// Storage defines the root interface for the entire data layer.
// Components should depend on the more granular interfaces instead of this one.
type Storage interface {
	ApiStore
}
