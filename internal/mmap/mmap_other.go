//go:build !linux && !darwin
// +build !linux,!darwin

package mmap

import (
	"fmt"
	"os"
)

// File is a read-only, fully resident view of a file's contents.
// On platforms without mmap support the file is simply read into memory.
type File struct {
	Data []byte
}

func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return &File{Data: data}, nil
}

func (m *File) Close() error {
	m.Data = nil
	return nil
}
