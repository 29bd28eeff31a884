// Package syncutil provides a scoped wrapper around sync.Locker.
package syncutil

import "sync"

// Locked runs fn while holding l and returns its results.
// The lock is released on every return path, including panics.
func Locked[T any](l sync.Locker, fn func() (T, error)) (T, error) {
	l.Lock()
	defer l.Unlock()
	return fn()
}

// Do is Locked for functions that only return an error.
func Do(l sync.Locker, fn func() error) error {
	_, err := Locked(l, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
