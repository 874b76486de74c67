//go:build !linux

package main

import (
	"os"

	"quaddecode/quadrature"
)

// readRawCapture reads a raw dump into memory. Used where mmap through
// x/sys/unix is not wired up.
func readRawCapture(path string) ([]quadrature.Symbol, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := checkRawSize(st.Size()); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return symbolsFromBytes(b), nil
}
