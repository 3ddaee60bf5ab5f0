//go:build linux || darwin
// +build linux darwin

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only, fully resident view of a file's contents.
// Data stays valid until Close.
type File struct {
	Data []byte

	f *os.File
}

// Open memory-maps the file at path. An empty file yields an empty Data
// slice rather than an error, since an empty buffer is a valid scan input.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q: %w", path, err)
	}
	return &File{Data: data, f: f}, nil
}

// Close unmaps the region and closes the underlying file. Data must not be
// used afterwards.
func (m *File) Close() error {
	var err error
	if m.Data != nil {
		err = unix.Munmap(m.Data)
		m.Data = nil
	}
	if cerr := m.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
