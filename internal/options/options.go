// Package options holds the generic functional-option plumbing shared by the
// operation and facade packages.
package options

// Constructor produces the default option set.
type Constructor[T any] func() T

// Callback mutates one option in the set.
type Callback[T any] func(*T)

// Apply builds an option set from its defaults and the given callbacks.
func Apply[T any](constructor Constructor[T], cbs []Callback[T]) T {
	var opts T

	if constructor != nil {
		opts = constructor()
	}

	for _, cb := range cbs {
		cb(&opts)
	}

	return opts
}
