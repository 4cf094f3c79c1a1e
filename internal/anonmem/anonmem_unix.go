//go:build unix

package anonmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve maps an anonymous, process-private, read/write region of size
// bytes and returns it along with a release function. The region is
// zero-initialized by the kernel.
func Reserve(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("anonmem: negative size %d", size)
	}
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("anonmem: mmap %d bytes: %w", size, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-release as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
