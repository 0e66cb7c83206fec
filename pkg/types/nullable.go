// Package types holds the wire schema shared by the API client, the resource
// services and the CLI. There is exactly one struct per remote entity.
package types

// Nullable is implemented by values that distinguish an explicit JSON null
// from a zero value.
type Nullable interface {
	IsNil() bool
}
