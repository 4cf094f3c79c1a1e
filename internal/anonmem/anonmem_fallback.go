//go:build !unix

// Package anonmem provides platform-specific reservation of large anonymous
// memory regions.
package anonmem

import "fmt"

// Reserve allocates from the Go heap when anonymous mmap is not available.
func Reserve(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("anonmem: negative size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
