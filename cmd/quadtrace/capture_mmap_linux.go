//go:build linux

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"quaddecode/quadrature"
)

// readRawCapture maps a raw logic-analyzer dump read-only and widens it to
// symbols. The mapping is released before returning.
func readRawCapture(path string) ([]quadrature.Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if err := checkRawSize(st.Size()); err != nil {
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	defer unix.Munmap(data)

	// Sequential access only; a failed hint is harmless.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return symbolsFromBytes(data), nil
}
